package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// System monitoring handlers. Repetition (cpu -c N -i S) happens inside one
// handler call with plain sleeps; the REPL stays single-threaded.

func usageColor(percent float64) string {
	switch {
	case percent > 80:
		return "red"
	case percent > 60:
		return "yellow"
	default:
		return "green"
	}
}

// usageBar renders a fixed-width fill bar for a percentage.
func usageBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (c *CLI) cmdCPU(args []string) (string, error) {
	interval := 1.0
	count := 1
	perCPU := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-i":
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -i")
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || v <= 0 {
				return "", invalidArgError("Invalid interval: %s", args[i+1])
			}
			interval = v
			i++
		case "-c":
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -c")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return "", invalidArgError("Invalid count: %s", args[i+1])
			}
			count = n
			i++
		case "-p":
			perCPU = true
		default:
			return "", invalidArgError("Unknown option: %s", args[i])
		}
	}

	var sb strings.Builder
	for iteration := 0; iteration < count; iteration++ {
		if iteration > 0 {
			sb.WriteString("\n")
		}

		// Percent blocks for the interval while sampling.
		percents, err := cpu.Percent(time.Duration(interval*float64(time.Second)), perCPU)
		if err != nil {
			return "", fmt.Errorf("failed to sample CPU usage: %v", err)
		}

		if count > 1 {
			fmt.Fprintf(&sb, "Sample %d/%d:\n", iteration+1, count)
		}

		if perCPU {
			sb.WriteString("Per-CPU usage:\n")
			for core, percent := range percents {
				line := fmt.Sprintf("  CPU%-2d [%s] %5.1f%%", core, usageBar(percent, 20), percent)
				sb.WriteString(c.color(line, usageColor(percent)) + "\n")
			}
		} else if len(percents) > 0 {
			percent := percents[0]
			line := fmt.Sprintf("CPU usage: [%s] %.1f%%", usageBar(percent, 30), percent)
			sb.WriteString(c.color(line, usageColor(percent)) + "\n")
		}
	}

	if counts, err := cpu.Counts(true); err == nil {
		physical, _ := cpu.Counts(false)
		fmt.Fprintf(&sb, "Cores: %d logical, %d physical", counts, physical)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *CLI) cmdMem(args []string) (string, error) {
	flags, _ := splitFlags(args)
	showSwap := flags["-s"]
	detailed := flags["-d"]

	vm, err := mem.VirtualMemory()
	if err != nil {
		return "", fmt.Errorf("failed to read memory statistics: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("Memory usage:\n")
	bar := fmt.Sprintf("  [%s] %.1f%%", usageBar(vm.UsedPercent, 50), vm.UsedPercent)
	sb.WriteString(c.color(bar, usageColor(vm.UsedPercent)) + "\n")
	fmt.Fprintf(&sb, "  Total: %s  Used: %s  Available: %s\n",
		formatSize(vm.Total), formatSize(vm.Used), formatSize(vm.Available))

	if detailed {
		fmt.Fprintf(&sb, "  Free: %s  Cached: %s  Buffers: %s\n",
			formatSize(vm.Free), formatSize(vm.Cached), formatSize(vm.Buffers))
	}

	if showSwap {
		swap, err := mem.SwapMemory()
		if err != nil {
			return "", fmt.Errorf("failed to read swap statistics: %v", err)
		}
		sb.WriteString("Swap usage:\n")
		bar := fmt.Sprintf("  [%s] %.1f%%", usageBar(swap.UsedPercent, 50), swap.UsedPercent)
		sb.WriteString(c.color(bar, usageColor(swap.UsedPercent)) + "\n")
		fmt.Fprintf(&sb, "  Total: %s  Used: %s  Free: %s\n",
			formatSize(swap.Total), formatSize(swap.Used), formatSize(swap.Free))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

type processRow struct {
	pid    int32
	name   string
	cpu    float64
	memMB  float64
	memPct float32
	user   string
	status string
}

func (c *CLI) cmdPs(args []string) (string, error) {
	limit := 15
	sortByMem := false
	showAll := false
	filterUser := ""
	filterPattern := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-a":
			showAll = true
		case "-s":
			// default CPU sort, kept for symmetry
		case "-m":
			sortByMem = true
		case "-n":
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -n")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return "", invalidArgError("Invalid count: %s", args[i+1])
			}
			limit = n
			i++
		case "-u":
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -u")
			}
			filterUser = args[i+1]
			i++
		case "-p":
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -p")
			}
			filterPattern = strings.ToLower(args[i+1])
			i++
		default:
			return "", invalidArgError("Unknown option: %s", args[i])
		}
	}

	procs, err := process.Processes()
	if err != nil {
		return "", fmt.Errorf("failed to list processes: %v", err)
	}

	var rows []processRow
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if filterPattern != "" && !strings.Contains(strings.ToLower(name), filterPattern) {
			continue
		}

		user, _ := p.Username()
		if filterUser != "" && user != filterUser {
			continue
		}

		cpuPct, _ := p.CPUPercent()
		memPct, _ := p.MemoryPercent()
		var memMB float64
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			memMB = float64(mi.RSS) / 1024 / 1024
		}
		status := ""
		if st, err := p.Status(); err == nil && len(st) > 0 {
			status = st[0]
		}

		rows = append(rows, processRow{
			pid:    p.Pid,
			name:   name,
			cpu:    cpuPct,
			memMB:  memMB,
			memPct: memPct,
			user:   user,
			status: status,
		})
	}

	if sortByMem {
		sort.Slice(rows, func(i, j int) bool { return rows[i].memPct > rows[j].memPct })
	} else {
		sort.Slice(rows, func(i, j int) bool { return rows[i].cpu > rows[j].cpu })
	}

	if !showAll && len(rows) > limit {
		rows = rows[:limit]
	}
	if len(rows) == 0 {
		return "No matching processes found.", nil
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			strconv.Itoa(int(row.pid)),
			truncateText(row.name, 24),
			fmt.Sprintf("%.1f", row.cpu),
			fmt.Sprintf("%.1f", row.memPct),
			fmt.Sprintf("%.1f MB", row.memMB),
			row.user,
			row.status,
		})
	}
	out := formatTable(table, []string{"PID", "NAME", "CPU%", "MEM%", "RSS", "USER", "STATUS"})
	return out + fmt.Sprintf("\n%d processes shown", len(rows)), nil
}

func (c *CLI) cmdDisk(args []string) (string, error) {
	flags, _ := splitFlags(args)
	allPartitions := flags["-a"]

	partitions, err := disk.Partitions(allPartitions)
	if err != nil {
		return "", fmt.Errorf("failed to list partitions: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("Disk usage:\n")
	rows := make([][]string, 0, len(partitions))
	for _, part := range partitions {
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			part.Device,
			part.Mountpoint,
			part.Fstype,
			formatSize(usage.Total),
			formatSize(usage.Used),
			formatSize(usage.Free),
			fmt.Sprintf("%.1f%%", usage.UsedPercent),
		})
	}
	if len(rows) == 0 {
		return "No mounted filesystems found.", nil
	}
	sb.WriteString(formatTable(rows, []string{"DEVICE", "MOUNT", "TYPE", "TOTAL", "USED", "FREE", "USE%"}))

	if counters, err := disk.IOCounters(); err == nil && len(counters) > 0 {
		var readBytes, writeBytes uint64
		for _, counter := range counters {
			readBytes += counter.ReadBytes
			writeBytes += counter.WriteBytes
		}
		fmt.Fprintf(&sb, "\nI/O since boot: %s read, %s written", formatSize(readBytes), formatSize(writeBytes))
	}
	return sb.String(), nil
}

func (c *CLI) cmdUptime(args []string) (string, error) {
	bootTime, err := host.BootTime()
	if err != nil {
		return "", fmt.Errorf("failed to read boot time: %v", err)
	}

	boot := time.Unix(int64(bootTime), 0)
	up := time.Since(boot)
	days := int(up.Hours()) / 24
	hours := int(up.Hours()) % 24
	minutes := int(up.Minutes()) % 60

	var sb strings.Builder
	fmt.Fprintf(&sb, "Uptime: %dd %dh %dm (since %s)\n", days, hours, minutes, boot.Format("2006-01-02 15:04:05"))

	if avg, err := load.Avg(); err == nil {
		fmt.Fprintf(&sb, "Load average: %.2f, %.2f, %.2f\n", avg.Load1, avg.Load5, avg.Load15)
	}
	if users, err := host.Users(); err == nil {
		fmt.Fprintf(&sb, "Users logged in: %d", len(users))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *CLI) cmdNet(args []string) (string, error) {
	flags, _ := splitFlags(args)
	showInterfaces := flags["-i"]
	showStats := flags["-s"]
	if !showInterfaces && !showStats {
		showInterfaces, showStats = true, true
	}

	var sb strings.Builder
	if showInterfaces {
		interfaces, err := gnet.Interfaces()
		if err != nil {
			return "", fmt.Errorf("failed to list network interfaces: %v", err)
		}
		sb.WriteString("Network interfaces:\n")
		for _, iface := range interfaces {
			var addrs []string
			for _, addr := range iface.Addrs {
				addrs = append(addrs, addr.Addr)
			}
			state := "down"
			for _, flag := range iface.Flags {
				if flag == "up" {
					state = "up"
				}
			}
			fmt.Fprintf(&sb, "  %-12s %-4s mtu %-5d %s\n", iface.Name, state, iface.MTU, strings.Join(addrs, ", "))
		}
	}

	if showStats {
		counters, err := gnet.IOCounters(false)
		if err != nil {
			return "", fmt.Errorf("failed to read network statistics: %v", err)
		}
		if len(counters) > 0 {
			total := counters[0]
			sb.WriteString("Traffic since boot:\n")
			fmt.Fprintf(&sb, "  Sent: %s (%d packets)\n", formatSize(total.BytesSent), total.PacketsSent)
			fmt.Fprintf(&sb, "  Received: %s (%d packets)\n", formatSize(total.BytesRecv), total.PacketsRecv)
			if total.Errin+total.Errout > 0 {
				fmt.Fprintf(&sb, "  Errors: %d in, %d out\n", total.Errin, total.Errout)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
