package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/duskhaven/go-dusk/internal/darkness"
	"github.com/duskhaven/go-dusk/internal/display"
	"github.com/duskhaven/go-dusk/internal/tag"
)

// Handler executes operator commands against the running engines. It is the
// operational surface only; the game-client transport consumes the event
// subjects directly.
type Handler struct {
	darkness *darkness.Manager
	tag      *tag.Manager
}

func NewHandler(dm *darkness.Manager, tm *tag.Manager) *Handler {
	return &Handler{
		darkness: dm,
		tag:      tm,
	}
}

// Run serves one operator connection until it closes or the context ends.
func (h *Handler) Run(ctx context.Context, rw io.ReadWriter) error {
	fmt.Fprintf(rw, "dusk ops console. Type 'help' for commands.\n")

	scanner := bufio.NewScanner(rw)
	for {
		fmt.Fprintf(rw, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		fmt.Fprintf(rw, "%s\n", h.Execute(ctx, line))
	}
}

// Execute runs a single command line and returns the response text.
func (h *Handler) Execute(ctx context.Context, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return h.help()
	case "regions":
		return h.regions()
	case "region":
		return h.region(args)
	case "sessions":
		return h.sessions()
	case "session":
		return h.session(args)
	case "safe":
		return h.safe(args)
	case "force-active":
		return h.forceActive(ctx, args)
	case "force-clear":
		return h.forceClear(ctx, args)
	case "lantern-add":
		return h.lanternAdd(args)
	case "lantern-remove":
		return h.lanternRemove(args)
	default:
		return fmt.Sprintf("unknown command %q, try 'help'", cmd)
	}
}

func (h *Handler) help() string {
	return display.Wrap(`Commands:
  regions                             cycle status of every region
  region <id>                         cycle status of one region
  sessions                            every tracked tag session
  session <id>                        one tag session in detail
  safe <region> <x> <y>               whether a position is in a safe zone
  force-active <region> [seconds]     push a region's darkness active
  force-clear <region>                reset a region to calm
  lantern-add <region> <x> <y>        register a lit lantern
  lantern-remove <id>                 unregister a lantern
  quit                                close the console`)
}

func (h *Handler) regions() string {
	statuses := h.darkness.AllRegionStatuses()
	if len(statuses) == 0 {
		return "no regions registered"
	}

	var out []string
	for _, st := range statuses {
		text, err := expandTemplate(regionTemplate, st)
		if err != nil {
			return fmt.Sprintf("rendering status: %v", err)
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n")
}

func (h *Handler) region(args []string) string {
	if len(args) != 1 {
		return "usage: region <id>"
	}

	st := h.darkness.RegionStatus(args[0])
	if st == nil {
		return fmt.Sprintf("region %q not found", args[0])
	}

	text, err := expandTemplate(regionTemplate, st)
	if err != nil {
		return fmt.Sprintf("rendering status: %v", err)
	}
	return text
}

func (h *Handler) sessions() string {
	views := h.tag.AllSessions()
	if len(views) == 0 {
		return "no sessions"
	}

	var out []string
	for _, v := range views {
		out = append(out, fmt.Sprintf("%s in %s: %s (%d players)", v.ID, v.Region, v.Status, len(v.Players)))
	}
	return strings.Join(out, "\n")
}

func (h *Handler) session(args []string) string {
	if len(args) != 1 {
		return "usage: session <id>"
	}

	v := h.tag.Session(args[0])
	if v == nil {
		return fmt.Sprintf("session %q not found", args[0])
	}

	text, err := expandTemplate(sessionTemplate, v)
	if err != nil {
		return fmt.Sprintf("rendering session: %v", err)
	}
	return text
}

func (h *Handler) safe(args []string) string {
	if len(args) != 3 {
		return "usage: safe <region> <x> <y>"
	}

	x, errX := strconv.ParseFloat(args[1], 64)
	y, errY := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil {
		return "usage: safe <region> <x> <y>"
	}

	if h.darkness.IsPositionSafe(args[0], x, y) {
		return "safe"
	}
	return "not safe"
}

func (h *Handler) forceActive(ctx context.Context, args []string) string {
	if len(args) < 1 || len(args) > 2 {
		return "usage: force-active <region> [seconds]"
	}

	var duration time.Duration
	if len(args) == 2 {
		secs, err := strconv.ParseFloat(args[1], 64)
		if err != nil || secs <= 0 {
			return "seconds must be a positive number"
		}
		duration = time.Duration(secs * float64(time.Second))
	}

	if h.darkness.RegionStatus(args[0]) == nil {
		return fmt.Sprintf("region %q not found", args[0])
	}

	h.darkness.ForceActive(ctx, args[0], duration)
	return fmt.Sprintf("region %s forced active", args[0])
}

func (h *Handler) forceClear(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "usage: force-clear <region>"
	}

	if h.darkness.RegionStatus(args[0]) == nil {
		return fmt.Sprintf("region %q not found", args[0])
	}

	h.darkness.ForceClear(ctx, args[0])
	return fmt.Sprintf("region %s cleared", args[0])
}

func (h *Handler) lanternAdd(args []string) string {
	if len(args) != 3 {
		return "usage: lantern-add <region> <x> <y>"
	}

	x, errX := strconv.ParseFloat(args[1], 64)
	y, errY := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil {
		return "usage: lantern-add <region> <x> <y>"
	}

	id := h.darkness.RegisterLantern("", args[0], x, y)
	if id == "" {
		return fmt.Sprintf("region %q not found", args[0])
	}
	return fmt.Sprintf("lantern %s registered", id)
}

func (h *Handler) lanternRemove(args []string) string {
	if len(args) != 1 {
		return "usage: lantern-remove <id>"
	}

	h.darkness.UnregisterLantern(args[0])
	return fmt.Sprintf("lantern %s unregistered", args[0])
}
