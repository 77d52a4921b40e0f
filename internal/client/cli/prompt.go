package cli

import (
	"encoding/json"
	"errors"

	"github.com/fusion-condo/fusion/internal/common"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askDefault shows def in brackets and returns it when the answer is empty.
func (a *App) askDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt += " [" + def + "]"
	}
	v, err := a.ask(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (a *App) askPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// askJSON reads a multi-line JSON document.
func (a *App) askJSON(prompt string) (json.RawMessage, error) {
	text, err := getMultiline(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(text)) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(text), nil
}

// printJSON pretty-prints raw, or "(empty)" for a bodiless answer.
func (a *App) printJSON(raw json.RawMessage) {
	if len(raw) == 0 {
		a.println("(empty)")
		return
	}
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		a.println(string(raw))
		return
	}
	a.println(string(out))
}
