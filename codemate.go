package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const codeMateMaxFileSize = 512 * 1024

// CodeMateClient talks to the CodeMate code-assistance API. Without an API
// key every request degrades to a "not configured" message instead of
// failing the command.
type CodeMateClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

type codeMateRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Instruction string `json:"instruction,omitempty"`
}

type codeMateResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

func NewCodeMateClient(baseURL, apiKey string) *CodeMateClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &CodeMateClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Configured reports whether an API key is present.
func (cm *CodeMateClient) Configured() bool {
	return cm.apiKey != ""
}

// detectLanguage maps a file extension to the API's language identifier.
func detectLanguage(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".py":
		return "python"
	case ".go":
		return "go"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".rs":
		return "rust"
	case ".rb":
		return "ruby"
	case ".sh":
		return "shell"
	default:
		return "text"
	}
}

// request posts code to one API operation and returns the result text.
func (cm *CodeMateClient) request(operation string, req codeMateRequest) (string, error) {
	var result codeMateResponse
	resp, err := cm.client.R().
		SetBody(req).
		SetResult(&result).
		Post(cm.baseURL + "/" + operation)
	if err != nil {
		return "", fmt.Errorf("CodeMate request failed: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("CodeMate API error: %s", resp.Status())
	}
	if result.Error != "" {
		return "", fmt.Errorf("CodeMate API error: %s", result.Error)
	}
	return result.Result, nil
}

// Analyze, Optimize, Debug and Refactor all submit file contents; Generate
// submits a free-text instruction.

func (cm *CodeMateClient) Analyze(code, language string) (string, error) {
	return cm.request("analyze", codeMateRequest{Code: code, Language: language})
}

func (cm *CodeMateClient) Optimize(code, language string) (string, error) {
	return cm.request("optimize", codeMateRequest{Code: code, Language: language})
}

func (cm *CodeMateClient) Debug(code, language, issue string) (string, error) {
	return cm.request("debug", codeMateRequest{Code: code, Language: language, Instruction: issue})
}

func (cm *CodeMateClient) Refactor(code, language string) (string, error) {
	return cm.request("refactor", codeMateRequest{Code: code, Language: language})
}

func (cm *CodeMateClient) Generate(instruction, language string) (string, error) {
	return cm.request("generate", codeMateRequest{Language: language, Instruction: instruction})
}

// --- command handlers ---

const codeMateNotConfigured = "CodeMate is not configured. Set the CODEMATE_API_KEY environment variable to enable code assistance."

// readCodeFile loads a source file through the jail with size and binary
// checks, returning contents and detected language.
func (c *CLI) readCodeFile(filename string) (string, string, error) {
	path, err := c.resolvePath(filename)
	if err != nil {
		return "", "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", "", wrapPathErr(path, err)
	}
	if info.IsDir() {
		return "", "", invalidArgError("Not a file: %s", filename)
	}
	if info.Size() > codeMateMaxFileSize {
		return "", "", invalidArgError("File too large for CodeMate: %s (max %s)", filename, formatSize(codeMateMaxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", wrapPathErr(path, err)
	}
	return string(data), detectLanguage(filename), nil
}

func (c *CLI) cmdAnalyze(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: analyze <file>", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	code, language, err := c.readCodeFile(args[0])
	if err != nil {
		return "", err
	}
	result, err := c.codemate.Analyze(code, language)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Analysis of '%s' (%s):\n%s", args[0], language, result), nil
}

func (c *CLI) cmdCompile(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: compile <file>", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	code, language, err := c.readCodeFile(args[0])
	if err != nil {
		return "", err
	}
	result, err := c.codemate.Analyze(code, language)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Compilation check for '%s' (%s):\n%s", args[0], language, result), nil
}

func (c *CLI) cmdOptimize(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: optimize <file>", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	code, language, err := c.readCodeFile(args[0])
	if err != nil {
		return "", err
	}
	result, err := c.codemate.Optimize(code, language)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Optimization suggestions for '%s':\n%s", args[0], result), nil
}

func (c *CLI) cmdDebug(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: debug <file> [issue description]", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	code, language, err := c.readCodeFile(args[0])
	if err != nil {
		return "", err
	}
	issue := strings.Join(args[1:], " ")
	result, err := c.codemate.Debug(code, language, issue)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Debug assistance for '%s':\n%s", args[0], result), nil
}

func (c *CLI) cmdRefactor(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: refactor <file>", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	code, language, err := c.readCodeFile(args[0])
	if err != nil {
		return "", err
	}
	result, err := c.codemate.Refactor(code, language)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Refactoring suggestions for '%s':\n%s", args[0], result), nil
}

func (c *CLI) cmdGenerate(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: generate <description of code to generate>", nil
	}
	if !c.codemate.Configured() {
		return codeMateNotConfigured, nil
	}

	instruction := strings.Join(args, " ")
	result, err := c.codemate.Generate(instruction, "")
	if err != nil {
		return "", err
	}
	return "Generated code:\n" + result, nil
}
