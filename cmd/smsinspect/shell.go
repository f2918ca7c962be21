package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/spf13/cobra"

	"github.com/skdltmxn/smsinspect/dispatch"
)

var (
	shellStatsview bool
	shellStatsAddr string
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Send requests interactively",
	Long: `Start an interactive session. Each line is a command name followed
by an optional JSON body, for example:

  getManagers
  read {"addr": [2151720680, 20], "type": "u32"}
  getFields "TMario"

A line starting with '{' is taken as a full request:
  {"id": 1, "command": "getVersion"}

Type "help" for the command list and "exit" to quit.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellStatsview, "statsview", false, "serve runtime statistics while the shell runs")
	shellCmd.Flags().StringVar(&shellStatsAddr, "statsview-addr", "localhost:12600", "statsview listen address")
}

func runShell(cmd *cobra.Command, args []string) error {
	session := dispatch.NewSession(dispatch.Config{
		Finder: newFinder(),
		PID:    targetPID,
		Params: newStore(),
		Logger: logger,
	})
	defer session.Close()

	if shellStatsview {
		viewer.SetConfiguration(viewer.WithAddr(shellStatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		fmt.Fprintf(output, "stats server available at http://%s/debug/statsview\n", shellStatsAddr)
	}

	home, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "smsinspect> ",
		HistoryFile:       filepath.Join(home, ".smsinspect_history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "q", "exit", "quit":
			return nil
		case "help":
			fmt.Fprintf(output, "commands: %s\n", strings.Join(dispatch.Commands(), ", "))
			continue
		}

		fmt.Fprintf(output, "%s\n", shellRequest(session, line))
	}
}

// shellRequest runs one shell line and returns the encoded answer.
func shellRequest(s *dispatch.Session, line string) []byte {
	if strings.HasPrefix(line, "{") {
		return s.HandleJSON([]byte(line))
	}

	command, body, _ := strings.Cut(line, " ")
	req := dispatch.Request{Command: command}
	if body = strings.TrimSpace(body); body != "" {
		if !json.Valid([]byte(body)) {
			return []byte(fmt.Sprintf(`{"error":%q}`, "body is not valid JSON"))
		}
		req.Body = json.RawMessage(body)
	}
	data, err := json.Marshal(req)
	if err != nil {
		return []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return s.HandleJSON(data)
}

func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, c := range dispatch.Commands() {
		items = append(items, readline.PcItem(c))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}
