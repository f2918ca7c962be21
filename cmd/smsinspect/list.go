package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/procfs"
	"github.com/skdltmxn/smsinspect/sms"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List running Dolphin processes",
	Long:  `List running Dolphin processes with the backend that can reach their memory and the game they are running.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	procs, err := procfs.ListDolphin()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	fmt.Fprintf(output, "%-8s %-20s %-8s %s\n", "PID", "NAME", "BACKEND", "GAME")
	rule()

	for _, p := range procs {
		m, err := dolphin.Open(p.PID, openers()...)
		if err != nil {
			fmt.Fprintf(output, "%-8d %-20s %-8s %s\n", p.PID, p.Name, "-", openFailure(err))
			continue
		}

		game := "SMS "
		v, err := sms.DetectVersion(m)
		var unknown *sms.UnknownGameError
		switch {
		case err == nil:
			game += v.String()
		case errors.As(err, &unknown):
			game = fmt.Sprintf("other (%q)", unknown.ID[:6])
		default:
			game = "none"
		}
		fmt.Fprintf(output, "%-8d %-20s %-8s %s\n", p.PID, p.Name, m.Kind(), game)
		m.Close()
	}

	fmt.Fprintf(output, "\nTotal: %d processes\n", len(procs))
	return nil
}

func openFailure(err error) string {
	switch {
	case errors.Is(err, dolphin.ErrPermission):
		return "permission denied"
	case errors.Is(err, dolphin.ErrMemoryUninitialized), errors.Is(err, dolphin.ErrMemoryNotFound):
		return "no game running"
	case errors.Is(err, dolphin.ErrProcessNotFound):
		return "exited"
	default:
		return err.Error()
	}
}
