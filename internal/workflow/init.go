// Package workflow drives the init flow: choose an agent and script flavor,
// then write the report script and review prompt into a project.
package workflow

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/oidellajulio/code-review-cli/internal/config"
	"github.com/oidellajulio/code-review-cli/internal/materialize"
	"github.com/oidellajulio/code-review-cli/internal/output"
	"github.com/oidellajulio/code-review-cli/internal/progress"
	"github.com/oidellajulio/code-review-cli/internal/selector"
	"github.com/oidellajulio/code-review-cli/internal/templates"
)

// DefaultAgent is used when no agent is given and nobody can be asked.
const DefaultAgent = "copilot"

// Step keys registered on the tracker.
const (
	StepDirs   = "dirs"
	StepScript = "script"
	StepPrompt = "prompt"
)

// State is a position in the init state machine.
type State int

// Init states in transition order. Aborted is terminal and reachable from
// every state before Summarizing.
const (
	ResolvingAgent State = iota
	ResolvingScript
	BuildingPaths
	CreatingDirs
	WritingScript
	WritingPrompt
	Summarizing
	Done
	Aborted
)

var stateNames = map[State]string{
	ResolvingAgent:  "resolving_agent",
	ResolvingScript: "resolving_script",
	BuildingPaths:   "building_paths",
	CreatingDirs:    "creating_dirs",
	WritingScript:   "writing_script",
	WritingPrompt:   "writing_prompt",
	Summarizing:     "summarizing",
	Done:            "done",
	Aborted:         "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Env carries everything the workflow touches outside its own state.
type Env struct {
	Printer     *output.Printer
	Chooser     selector.Chooser
	Interactive bool
	GOOS        string
	Pacing      time.Duration
	Sleep       func(time.Duration)
	Settings    config.Settings
}

// Options are the explicit inputs to init. Empty Agent or Script means
// "not given on the command line".
type Options struct {
	Agent  string
	Script string
	Root   string
}

// Result describes a finished or aborted run.
type Result struct {
	State      State
	Agent      templates.Agent
	Script     templates.Script
	Root       string
	ScriptDir  string
	PromptDir  string
	ScriptPath string
	PromptPath string
	Command    string // invocation embedded in the prompt
	RunExample string // invocation shown in the summary
	Steps      []progress.Step
}

// Init is one run of the init state machine.
type Init struct {
	env     Env
	opts    Options
	state   State
	result  Result
	tracker *progress.Tracker
	live    *progress.Live
}

// New prepares an init run.
func New(env Env, opts Options) *Init {
	if env.Sleep == nil {
		env.Sleep = time.Sleep
	}
	if env.Printer == nil {
		env.Printer = output.NewPrinter(io.Discard, true, false)
	}
	return &Init{env: env, opts: opts, state: ResolvingAgent}
}

// Tracker returns the progress tracker, or nil before paths are built.
func (in *Init) Tracker() *progress.Tracker { return in.tracker }

// Run advances the state machine until Done or Aborted. The returned error
// is an *output.ExitError describing why the run aborted.
func (in *Init) Run(ctx context.Context) (*Result, error) {
	defer in.stopLive()

	for in.state != Done && in.state != Aborted {
		next, err := in.step(ctx)
		if err != nil {
			in.state = Aborted
			return in.finish(), err
		}
		in.state = next
	}
	return in.finish(), nil
}

func (in *Init) finish() *Result {
	in.result.State = in.state
	if in.tracker != nil {
		in.result.Steps = in.tracker.Steps()
	}
	res := in.result
	return &res
}

func (in *Init) step(ctx context.Context) (State, error) {
	switch in.state {
	case ResolvingAgent:
		return ResolvingScript, in.resolveAgent(ctx)
	case ResolvingScript:
		return BuildingPaths, in.resolveScript(ctx)
	case BuildingPaths:
		return CreatingDirs, in.buildPaths()
	case CreatingDirs:
		return WritingScript, in.createDirs()
	case WritingScript:
		return WritingPrompt, in.writeScript()
	case WritingPrompt:
		return Summarizing, in.writePrompt()
	case Summarizing:
		in.summarize()
		return Done, nil
	default:
		return Aborted, fmt.Errorf("unexpected state %s", in.state)
	}
}

func (in *Init) resolveAgent(ctx context.Context) error {
	key, err := in.resolve(ctx, choice{
		kind:     "agent",
		explicit: in.opts.Agent,
		fallback: DefaultAgent,
		setting:  in.env.Settings.Agent,
		keys:     templates.AgentKeys(),
		prompt:   "Choose your AI assistant",
		options:  agentOptions(),
	})
	if err != nil {
		return err
	}
	in.result.Agent, _ = templates.LookupAgent(key)
	return nil
}

func (in *Init) resolveScript(ctx context.Context) error {
	key, err := in.resolve(ctx, choice{
		kind:     "script",
		explicit: in.opts.Script,
		fallback: templates.DefaultScript(in.env.GOOS),
		setting:  in.env.Settings.Script,
		keys:     templates.ScriptKeys(),
		prompt:   "Choose the script format",
		options:  scriptOptions(),
	})
	if err != nil {
		return err
	}
	in.result.Script, _ = templates.LookupScript(key)
	return nil
}

// choice describes one enumerated setting to resolve.
type choice struct {
	kind     string
	explicit string
	fallback string
	setting  string
	keys     []string
	prompt   string
	options  []selector.Option
}

func (c choice) valid(key string) bool {
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}

// resolve applies flag, then non-interactive default, then the menu.
func (in *Init) resolve(ctx context.Context, c choice) (string, error) {
	if c.explicit != "" {
		if !c.valid(c.explicit) {
			return "", output.NewUserError(fmt.Sprintf(
				"invalid %s %q (options: %s)", c.kind, c.explicit, strings.Join(c.keys, ", ")))
		}
		return c.explicit, nil
	}

	def := c.fallback
	if c.setting != "" {
		if c.valid(c.setting) {
			def = c.setting
		} else {
			in.env.Printer.Notice("ignoring configured %s %q, using %q", c.kind, c.setting, def)
		}
	}

	if !in.env.Interactive || in.env.Chooser == nil {
		in.env.Printer.Notice("non-interactive session, using '%s' as default %s", def, c.kind)
		return def, nil
	}

	res, err := in.env.Chooser.Choose(ctx, c.prompt, c.options, def)
	if err != nil {
		return "", output.NewUserError(fmt.Sprintf("reading selection: %v", err))
	}
	if res.Outcome != selector.Selected {
		in.env.Printer.Warn("Selection cancelled.")
		return "", output.NewCancelledError()
	}
	return res.Key, nil
}

func agentOptions() []selector.Option {
	agents := templates.Agents()
	opts := make([]selector.Option, len(agents))
	for i, a := range agents {
		opts[i] = selector.Option{Key: a.Key, Label: a.Key, Hint: a.Name}
	}
	return opts
}

func scriptOptions() []selector.Option {
	scripts := templates.Scripts()
	opts := make([]selector.Option, len(scripts))
	for i, s := range scripts {
		opts[i] = selector.Option{Key: s.Key, Label: s.Key, Hint: s.Label}
	}
	return opts
}

func (in *Init) buildPaths() error {
	root, err := filepath.Abs(in.opts.Root)
	if err != nil {
		return output.NewUserError(fmt.Sprintf("resolving root %q: %v", in.opts.Root, err))
	}

	r := &in.result
	r.Root = root
	r.ScriptDir = filepath.Join(root, filepath.FromSlash(templates.ScriptDir))
	r.PromptDir = filepath.Join(root, filepath.FromSlash(r.Agent.PromptDir))
	r.ScriptPath = filepath.Join(r.ScriptDir, r.Script.FileName)
	r.PromptPath = filepath.Join(r.PromptDir, templates.PromptFileName)
	r.Command = r.Script.Invocation(templates.BranchArgument)
	r.RunExample = r.Script.Invocation(templates.ExampleBranch)

	flavor := strings.ToUpper(r.Script.Key)
	printer := in.env.Printer
	if !printer.IsJSON() {
		printer.KeyValue("Target", r.Agent.Name)
		printer.KeyValue("Script", flavor)
		printer.Println()
	}

	in.tracker = progress.New("Initializing Code Review", printer.Styles())
	in.tracker.Add(StepDirs, "Create directory structure")
	in.tracker.Add(StepScript, "Generate "+flavor+" script")
	in.tracker.Add(StepPrompt, "Generate prompt for "+r.Agent.Key)
	if !printer.IsJSON() {
		in.live = progress.NewLive(printer.Writer(), in.tracker, printer.IsTTY())
	}
	return nil
}

func (in *Init) createDirs() error {
	in.tracker.Start(StepDirs, "")
	if err := materialize.EnsureDirs(in.result.ScriptDir, in.result.PromptDir); err != nil {
		return in.fail(StepDirs, "creating directories", err)
	}
	in.tracker.Complete(StepDirs, "ready")
	in.pause()
	return nil
}

func (in *Init) writeScript() error {
	script := in.result.Script
	in.tracker.Start(StepScript, "")

	body, err := script.Body()
	if err != nil {
		return in.fail(StepScript, "loading script template", err)
	}
	mode, err := materialize.CreateFile(in.result.ScriptPath, body, script.Executable)
	if err != nil {
		return in.fail(StepScript, "writing script", err)
	}

	detail := "created"
	if script.Executable && mode&0o111 != 0 {
		detail = "created & chmod +x"
	}
	in.tracker.Complete(StepScript, detail)
	in.pause()
	return nil
}

func (in *Init) writePrompt() error {
	in.tracker.Start(StepPrompt, "")
	content := templates.RenderPrompt(in.result.Command)
	if _, err := materialize.CreateFile(in.result.PromptPath, content, false); err != nil {
		return in.fail(StepPrompt, "writing prompt", err)
	}
	in.tracker.Complete(StepPrompt, "created")
	return nil
}

// fail marks step as errored and returns the exit error for it.
func (in *Init) fail(step, msg string, err error) error {
	in.tracker.Error(step, err.Error())
	return output.NewMaterializationError(msg+": "+err.Error(), err)
}

func (in *Init) pause() {
	if in.env.Pacing > 0 {
		in.env.Sleep(in.env.Pacing)
	}
}

func (in *Init) stopLive() {
	if in.live != nil {
		in.live.Stop()
		in.live = nil
	}
}

func (in *Init) summarize() {
	in.stopLive()

	printer := in.env.Printer
	if printer.IsJSON() {
		return
	}

	r := in.result
	relScript := relOrAbs(r.Root, r.ScriptPath)
	relPrompt := relOrAbs(r.Root, r.PromptPath)
	styles := printer.Styles()

	printer.Println()
	printer.Print("%s\n", styles.Success.Bold(true).Render("Environment ready!"))
	printer.Box("Next steps",
		"Script: "+styles.Accent.Render(relScript)+"\n"+
			"Prompt: "+styles.Accent.Render(relPrompt)+"\n\n"+
			styles.Dim.Render("To run (example):")+"\n"+
			styles.Accent.Render(r.RunExample))
}

func relOrAbs(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// Run executes a complete init with env and opts.
func Run(ctx context.Context, env Env, opts Options) (*Result, error) {
	return New(env, opts).Run(ctx)
}
