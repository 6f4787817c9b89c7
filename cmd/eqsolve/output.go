package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/bft-labs/eqsolve/internal/cliconfig"
	"github.com/bft-labs/eqsolve/internal/solver"
)

var red = color.New(color.FgRed).SprintFunc()

// jsonResult is the --format json document.
type jsonResult struct {
	ID       string            `json:"id"`
	Equation string            `json:"equation"`
	Target   string            `json:"target"`
	Solution string            `json:"solution"`
	LaTeX    string            `json:"latex"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Verified bool              `json:"verified"`
}

// jsonSchedule is the --format json document in schedule mode.
type jsonSchedule struct {
	jsonResult
	Location            string   `json:"location"`
	Start               jsonTime `json:"start"`
	SwitchAt            jsonTime `json:"switch_at"`
	FinishWithSwitch    jsonTime `json:"finish_with_switch"`
	FinishWithoutSwitch jsonTime `json:"finish_without_switch"`

	// Hours as exact rationals.
	Hours              string `json:"hours"`
	HoursWithoutSwitch string `json:"hours_without_switch"`
}

type jsonTime struct {
	Time string `json:"time"`
	Unix int64  `json:"unix"`
}

func newJSONTime(t time.Time) jsonTime {
	return jsonTime{Time: t.Format(time.RFC3339), Unix: t.Unix()}
}

func newJSONResult(res *solver.Result) jsonResult {
	return jsonResult{
		ID:       res.ID.String(),
		Equation: res.Equation.String(),
		Target:   res.Target,
		Solution: res.Expression(),
		LaTeX:    res.Value.LaTeX(),
		Bindings: res.Bindings,
		Verified: res.Verified,
	}
}

func render(res *solver.Result, format string, colored bool) (string, error) {
	switch format {
	case cliconfig.FormatText, "":
		return res.Sentence(), nil
	case cliconfig.FormatLaTeX:
		return res.LaTeX(), nil
	case cliconfig.FormatJSON:
		out, err := renderJSON(newJSONResult(res), colored)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func renderSchedule(sched *solver.Schedule, format string, colored bool) (string, error) {
	switch format {
	case cliconfig.FormatText, "":
		return strings.Join(sched.Lines(), "\n"), nil
	case cliconfig.FormatLaTeX:
		lines := sched.Lines()
		lines[0] = sched.WithSwitch.LaTeX()
		return strings.Join(lines, "\n"), nil
	case cliconfig.FormatJSON:
		out, err := renderJSON(jsonSchedule{
			jsonResult:          newJSONResult(sched.WithSwitch),
			Location:            sched.Start.Location().String(),
			Start:               newJSONTime(sched.Start),
			SwitchAt:            newJSONTime(sched.SwitchAt),
			FinishWithSwitch:    newJSONTime(sched.FinishWithSwitch),
			FinishWithoutSwitch: newJSONTime(sched.FinishWithoutSwitch),
			Hours:               sched.WithSwitch.Expression(),
			HoursWithoutSwitch:  sched.WithoutSwitch.Expression(),
		}, colored)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func renderJSON(v any, colored bool) ([]byte, error) {
	if !colored {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
