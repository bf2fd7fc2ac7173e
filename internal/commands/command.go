// Package commands parses slash commands typed into the palette and
// dispatches them to handler callbacks. Parsing is independent of any
// service so errors surface before anything touches the gateway.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeDelete    Type = "delete"
	TypeDue       Type = "due"
	TypeGoal      Type = "goal"
	TypeFocus     Type = "focus"
	TypeBreakdown Type = "breakdown"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Category string
}

type DoneArgs struct {
	Target string
}

type DeleteArgs struct {
	Target string
}

type DueArgs struct {
	Target string
	When   string
}

type GoalArgs struct {
	Name  string
	Hours float64
}

type FocusArgs struct {
	Goal string
}

type BreakdownArgs struct {
	Title string
}

type Command struct {
	Type      Type
	Raw       string
	Add       *AddArgs
	Done      *DoneArgs
	Delete    *DeleteArgs
	Due       *DueArgs
	Goal      *GoalArgs
	Focus     *FocusArgs
	Breakdown *BreakdownArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeBreakdown:
		return parseBreakdown(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	category := ""
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "cat:") {
			category = strings.TrimSpace(arg[len("cat:"):])
			continue
		}
		titleParts = append(titleParts, arg)
	}
	title := strings.TrimSpace(strings.Join(titleParts, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Category: category}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task id"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task id"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: args[0]}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires a task id and a time"}
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Target: args[0], When: strings.Join(args[1:], " ")}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a name and hours"}
	}
	hours, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil || hours <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal hours must be a positive number"}
	}
	name := strings.Join(args[:len(args)-1], " ")
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Name: name, Hours: hours}}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "focus requires a goal name"}
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Goal: strings.Join(args, " ")}}, nil
}

func parseBreakdown(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "breakdown requires a task title"}
	}
	return Command{Type: TypeBreakdown, Raw: raw, Breakdown: &BreakdownArgs{Title: strings.Join(args, " ")}}, nil
}
