package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/linedit/internal/workspace"
)

const withLogFlag = "with-log"

func (d *Dispatcher) registerBuiltins() {
	for _, cmd := range []*Command{
		{Name: "load", Usage: "load <file>", Summary: "open a file and make it active", MinArgs: 1, MaxArgs: 1, Run: d.cmdLoad},
		{Name: "save", Usage: "save [file|all]", Summary: "save the active file, a named file or all files", MinArgs: 0, MaxArgs: 1, Run: d.cmdSave},
		{Name: "init", Usage: "init <file> [with-log]", Summary: "create a new buffer", MinArgs: 1, MaxArgs: 2, Run: d.cmdInit},
		{Name: "close", Usage: "close [file]", Summary: "close the active or named file", MinArgs: 0, MaxArgs: 1, Run: d.cmdClose},
		{Name: "edit", Usage: "edit <file>", Summary: "switch to an open file", MinArgs: 1, MaxArgs: 1, Run: d.cmdEdit},
		{Name: "editor-list", Usage: "editor-list", Summary: "list open files", Run: d.cmdEditorList},
		{Name: "dir-tree", Usage: "dir-tree [path]", Summary: "show a directory tree", MinArgs: 0, MaxArgs: 1, Run: d.cmdDirTree},
		{Name: "undo", Usage: "undo", Summary: "undo the last edit", Run: d.cmdUndo},
		{Name: "redo", Usage: "redo", Summary: "redo the last undone edit", Run: d.cmdRedo},
		{Name: "append", Usage: `append "text"`, Summary: "append a line", MinArgs: 1, MaxArgs: 1, Run: d.cmdAppend},
		{Name: "insert", Usage: `insert <line:col> "text"`, Summary: "insert text at a position", MinArgs: 2, MaxArgs: 2, Run: d.cmdInsert},
		{Name: "delete", Usage: "delete <line:col> <len>", Summary: "delete characters", MinArgs: 2, MaxArgs: 2, Run: d.cmdDelete},
		{Name: "replace", Usage: `replace <line:col> <len> "text"`, Summary: "replace characters", MinArgs: 3, MaxArgs: 3, Run: d.cmdReplace},
		{Name: "show", Usage: "show [start:end]", Summary: "show lines of the active file", MinArgs: 0, MaxArgs: 1, Run: d.cmdShow},
		{Name: "log-on", Usage: "log-on [file]", Summary: "enable the activity log", MinArgs: 0, MaxArgs: 1, Run: d.cmdLogOn},
		{Name: "log-off", Usage: "log-off [file]", Summary: "disable the activity log", MinArgs: 0, MaxArgs: 1, Run: d.cmdLogOff},
		{Name: "log-show", Usage: "log-show [file]", Summary: "print the activity log", MinArgs: 0, MaxArgs: 1, Run: d.cmdLogShow},
		{Name: "diff", Usage: "diff [file]", Summary: "compare a buffer with its saved file", MinArgs: 0, MaxArgs: 1, Run: d.cmdDiff},
		{Name: "help", Usage: "help", Summary: "list commands", Run: d.cmdHelp},
		{Name: "exit", Usage: "exit", Summary: "leave the editor", Run: d.cmdExit},
	} {
		d.registry.Register(cmd)
	}
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Files

func (d *Dispatcher) cmdLoad(_ context.Context, args []string) (Result, error) {
	return Result{}, d.ws.Load(args[0])
}

func (d *Dispatcher) cmdSave(_ context.Context, args []string) (Result, error) {
	if optional(args) == "all" {
		return Result{}, d.ws.SaveAll()
	}
	return Result{}, d.ws.Save(optional(args))
}

func (d *Dispatcher) cmdInit(_ context.Context, args []string) (Result, error) {
	withLog := false
	if len(args) == 2 {
		if args[1] != withLogFlag {
			return Result{}, &UsageError{Command: "init", Usage: "init <file> [with-log]", Reason: fmt.Sprintf("unexpected %q", args[1])}
		}
		withLog = true
	}
	return Result{}, d.ws.Init(args[0], withLog)
}

func (d *Dispatcher) cmdClose(ctx context.Context, args []string) (Result, error) {
	ed, err := d.ws.Editor(optional(args))
	if err != nil {
		return Result{}, err
	}

	save := false
	if ed.Buffer.IsModified() {
		save, err = d.ask(ctx, fmt.Sprintf("Save changes to %s? (y/n)", ed.Path()))
		if err != nil {
			return Result{}, err
		}
	}
	return Result{}, d.ws.Close(ed.Path(), save)
}

func (d *Dispatcher) cmdEdit(_ context.Context, args []string) (Result, error) {
	return Result{}, d.ws.Edit(args[0])
}

func (d *Dispatcher) cmdEditorList(context.Context, []string) (Result, error) {
	infos := d.ws.List()
	lines := make([]string, 0, len(infos))
	for _, info := range infos {
		lines = append(lines, formatEditor(info))
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func formatEditor(info workspace.EditorInfo) string {
	prefix := "  "
	if info.Active {
		prefix = "> "
	}
	suffix := ""
	if info.Modified {
		suffix = "*"
	}
	return prefix + info.Path + suffix
}

func (d *Dispatcher) cmdDirTree(_ context.Context, args []string) (Result, error) {
	root := optional(args)
	if root == "" {
		root = "."
	}
	lines, err := d.ws.DirTree(root)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func (d *Dispatcher) cmdExit(ctx context.Context, _ []string) (Result, error) {
	modified := d.ws.ModifiedFiles()
	if len(modified) == 0 {
		return Result{Exit: true}, nil
	}

	save, err := d.ask(ctx, fmt.Sprintf("Save modified files (%s)? (y/n)", strings.Join(modified, ", ")))
	if err != nil {
		return Result{}, err
	}
	if save {
		if err := d.ws.SaveAll(); err != nil {
			return Result{}, err
		}
	}
	return Result{Exit: true}, nil
}

// Editing

func (d *Dispatcher) cmdAppend(_ context.Context, args []string) (Result, error) {
	return Result{}, d.ws.Append(args[0])
}

func (d *Dispatcher) cmdInsert(_ context.Context, args []string) (Result, error) {
	line, col, err := ParseLineCol(args[0])
	if err != nil {
		return Result{}, err
	}
	return Result{}, d.ws.Insert(line, col, args[1])
}

func (d *Dispatcher) cmdDelete(_ context.Context, args []string) (Result, error) {
	line, col, err := ParseLineCol(args[0])
	if err != nil {
		return Result{}, err
	}
	length, err := parseLength(args[1])
	if err != nil {
		return Result{}, err
	}
	return Result{}, d.ws.Delete(line, col, length)
}

func (d *Dispatcher) cmdReplace(_ context.Context, args []string) (Result, error) {
	line, col, err := ParseLineCol(args[0])
	if err != nil {
		return Result{}, err
	}
	length, err := parseLength(args[1])
	if err != nil {
		return Result{}, err
	}
	return Result{}, d.ws.Replace(line, col, length, args[2])
}

func (d *Dispatcher) cmdShow(_ context.Context, args []string) (Result, error) {
	var start, end int
	if len(args) == 1 {
		var err error
		if start, end, err = ParseRange(args[0]); err != nil {
			return Result{}, err
		}
		if start < 1 {
			// 0 is reserved by Workspace.Show for the whole file.
			start = 1
		}
	}
	lines, err := d.ws.Show(start, end)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func (d *Dispatcher) cmdUndo(context.Context, []string) (Result, error) {
	return Result{}, d.ws.Undo()
}

func (d *Dispatcher) cmdRedo(context.Context, []string) (Result, error) {
	return Result{}, d.ws.Redo()
}

// Activity log and inspection

func (d *Dispatcher) cmdLogOn(_ context.Context, args []string) (Result, error) {
	path, err := d.ws.LogOn(optional(args))
	if err != nil {
		return Result{}, err
	}
	return Result{Output: "logging enabled for " + path}, nil
}

func (d *Dispatcher) cmdLogOff(_ context.Context, args []string) (Result, error) {
	path, err := d.ws.LogOff(optional(args))
	if err != nil {
		return Result{}, err
	}
	return Result{Output: "logging disabled for " + path}, nil
}

func (d *Dispatcher) cmdLogShow(_ context.Context, args []string) (Result, error) {
	content, err := d.ws.LogShow(optional(args))
	if err != nil {
		return Result{}, err
	}
	return Result{Output: strings.TrimSuffix(content, "\n")}, nil
}

func (d *Dispatcher) cmdDiff(_ context.Context, args []string) (Result, error) {
	diff, err := d.ws.Diff(optional(args))
	if err != nil {
		return Result{}, err
	}
	if !workspace.Changed(diff) {
		return Result{Output: "no changes"}, nil
	}

	lines := make([]string, 0, len(diff))
	for _, l := range diff {
		lines = append(lines, l.String())
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func (d *Dispatcher) cmdHelp(context.Context, []string) (Result, error) {
	cmds := d.registry.List()

	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Usage))
	}

	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, fmt.Sprintf("  %-*s  %s", width, c.Usage, c.Summary))
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}
