package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/logging"
	"github.com/skdltmxn/smsinspect/internal/procfs"
	"github.com/skdltmxn/smsinspect/objparams"
	"github.com/skdltmxn/smsinspect/sms"
)

var (
	outputFile string
	output     io.Writer

	paramsDir string
	vtDir     string
	targetPID int
	backend   string
	verbose   int

	logger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "smsinspect",
	Short: "Super Mario Sunshine memory inspector",
	Long: `smsinspect reads and decodes the memory of Super Mario Sunshine
running in the Dolphin emulator.

Object layouts come from the JSON catalog in --params-dir; class names
come from the per-release virtual table files in --vt-dir.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}

		level := logging.SeverityWarning
		switch {
		case verbose >= 2:
			level = logging.SeverityDebug
		case verbose == 1:
			level = logging.SeverityInfo
		}
		logger = logging.NewStdLogger(os.Stderr, level)

		switch backend {
		case "auto", "shm", "process":
		default:
			return fmt.Errorf("unknown backend: %s (want auto, shm or process)", backend)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	dir := exeDir()

	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&paramsDir, "params-dir", filepath.Join(dir, "ObjectParameters"), "object parameter catalog directory")
	rootCmd.PersistentFlags().StringVar(&vtDir, "vt-dir", filepath.Join(dir, "vt"), "virtual table directory (one <release>.json per release)")
	rootCmd.PersistentFlags().IntVarP(&targetPID, "pid", "p", 0, "attach to this Dolphin process instead of searching")
	rootCmd.PersistentFlags().StringVarP(&backend, "backend", "b", "auto", "memory backend (auto, shm, process)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(hexCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(managersCmd)
	rootCmd.AddCommand(manageesCmd)
	rootCmd.AddCommand(shellCmd)
}

func exeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func openers() []dolphin.Opener {
	if o, ok := dolphin.OpenerByName(backend); ok {
		return []dolphin.Opener{o}
	}
	return nil
}

func newFinder() *sms.Finder {
	return &sms.Finder{
		Open: func(pid int) (*dolphin.Memory, error) {
			return dolphin.Open(pid, openers()...)
		},
		Classes: sms.VTableDir(vtDir),
	}
}

func newStore() *objparams.Store {
	return objparams.NewStore(paramsDir, objparams.Options{Logger: logger})
}

// openGame attaches to --pid, the only running emulator, or one chosen
// interactively when several are running.
func openGame() (*sms.Game, error) {
	finder := newFinder()
	if targetPID != 0 {
		return finder.Find(targetPID)
	}

	procs, err := procfs.ListDolphin()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	if len(procs) > 1 && term.IsTerminal(int(os.Stdin.Fd())) {
		pid, err := chooseProcess(procs)
		if err != nil {
			return nil, err
		}
		return finder.Find(pid)
	}
	return finder.FindOne()
}

func chooseProcess(procs []procfs.Process) (int, error) {
	items := make([]string, len(procs))
	for i, p := range procs {
		items[i] = fmt.Sprintf("%d  %s", p.PID, p.Name)
	}

	prompt := promptui.Select{
		Label: "Several Dolphin processes are running",
		Items: items,
	}
	i, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return 0, errors.New("cancelled")
		}
		return 0, err
	}
	return procs[i].PID, nil
}

// parseTarget parses "80001000" or the pointer path "803E9700,1C,4":
// read the pointer at the first address, add the next offset, and so on.
func parseTarget(g *sms.Game, s string) (addr.Addr, error) {
	o, err := addr.ParseOffsets(s)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	a, ok := g.ResolvePath(addr.Addr(o.Base), o.Tail...)
	if !ok {
		return 0, fmt.Errorf("address %s cannot be resolved", o)
	}
	return a, nil
}

// rule prints a horizontal rule as wide as the terminal.
func rule() {
	width := 80
	if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", width))
}
