package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// jsonOutput is set by --json.
var jsonOutput bool

// stdout is where command results are written; tests swap it out.
var stdout io.Writer = os.Stdout

// Response is the envelope every --json run prints exactly once on stdout.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal problem, such as a skipped menu item. Ref points at
// the document entry it came from, e.g. "Main Menu[3]".
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

type Meta struct {
	Count int `json:"count,omitempty"`
}

// reportedError marks an error whose envelope is already on stdout. The
// command still fails, but Execute does not print it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

func isJSONOutput() bool {
	return jsonOutput
}

func writeResponse(resp Response) {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func outputSuccess(data interface{}, meta *Meta) {
	writeResponse(Response{OK: true, Data: data, Meta: meta})
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeResponse(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// handleError turns err into the command's return value. With --json the
// error envelope is printed here and a reportedError comes back, so the exit
// status stays non-zero. Without it the suggestion is appended to the message.
func handleError(code string, err error, suggestion string) error {
	if !jsonOutput {
		if suggestion == "" {
			return err
		}
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	writeResponse(Response{Error: &ErrorInfo{Code: code, Message: err.Error(), Suggestion: suggestion}})
	return &reportedError{err: err}
}

func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}
