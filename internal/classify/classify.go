package classify

import (
	"context"
	"errors"
	"fmt"

	"scry/internal/tools"
)

// ErrDisabled is returned by classifiers that are not configured to run.
var ErrDisabled = errors.New("classifier disabled")

type Kind int

const (
	Plain Kind = iota
	KeyValue
	JSON
	External
)

// View is the layout used to show the buffer. Tool is set only for External.
type View struct {
	Kind Kind
	Tool string
}

func (v View) Name() string {
	switch v.Kind {
	case KeyValue:
		return "KeyValue"
	case JSON:
		return "Json"
	case External:
		return "External: " + v.Tool
	}
	return "Plain"
}

type Result struct {
	View    View
	Summary string
}

// Classifier picks a view for a sample of recent lines.
type Classifier interface {
	Classify(ctx context.Context, lines []string) (Result, error)
}

// Tools is the part of the external tool registry a classifier needs.
type Tools interface {
	Get(name string) (tools.Tool, bool)
	Available(name string) bool
	Descriptions() string
}

// resolve maps a view name as written in the prompt to a View. The second
// return value is the label shown to the user.
func resolve(view, tool string, ts Tools) (View, string, error) {
	switch view {
	case "Plain":
		return View{Kind: Plain}, "Plain", nil
	case "KeyValue":
		return View{Kind: KeyValue}, "KeyValue", nil
	case "Json":
		return View{Kind: JSON}, "Json", nil
	case "ExternalTool":
		if tool == "" {
			return View{}, "", errors.New("ExternalTool view requires 'tool' field")
		}
		if ts == nil {
			return View{}, "", fmt.Errorf("%w: %s", tools.ErrUnknownTool, tool)
		}
		if _, ok := ts.Get(tool); !ok {
			return View{}, "", fmt.Errorf("%w: %s", tools.ErrUnknownTool, tool)
		}
		if !ts.Available(tool) {
			return View{Kind: JSON}, fmt.Sprintf("Json (%s not available)", tool), nil
		}
		v := View{Kind: External, Tool: tool}
		return v, v.Name(), nil
	}
	return View{}, "", fmt.Errorf("unknown view type: %s", view)
}
