package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/world"
)

var (
	attachColor  = color.New(color.FgGreen)
	releaseColor = color.New(color.FgYellow)
	abortColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
	frameColor   = color.New(color.Faint)
)

// printer writes events in a human readable form, naming handles through the world.
type printer struct {
	w     io.Writer
	world *world.World
	json  bool
}

func (p printer) name(h world.Handle) string {
	if n := p.world.Name(h); n != "" {
		return n
	}
	return fmt.Sprintf("#%d", h)
}

// print writes a single event that happened during the frame passed.
func (p printer) print(frame uint64, ev event.Event) error {
	if p.json {
		data, err := event.Encode(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", data)
		return err
	}

	c, text := infoColor, ev.ID()
	switch ev := ev.(type) {
	case *event.SocketHoverEnter:
		text = fmt.Sprintf("%s hovers over %s", p.name(ev.Grabbable), p.name(ev.Socket))
	case *event.SocketHoverExit:
		text = fmt.Sprintf("%s leaves %s", p.name(ev.Grabbable), p.name(ev.Socket))
	case *event.SocketAttached:
		c = attachColor
		text = fmt.Sprintf("%s attached to %s at %.2v", p.name(ev.Grabbable), p.name(ev.Socket), ev.Pose.Position)
		if ev.Cue != "" {
			text += fmt.Sprintf(" (cue %s)", ev.Cue)
		}
	case *event.SocketReleased:
		c = releaseColor
		text = fmt.Sprintf("%s released from %s: %s", p.name(ev.Grabbable), p.name(ev.Socket), ev.Reason)
	case *event.Stabbed:
		c = attachColor
		text = fmt.Sprintf("%s stabbed %s", p.name(ev.Stabber), p.name(ev.Stabbable))
	case *event.FullyStabbed:
		c = attachColor
		text = fmt.Sprintf("%s fully stabbed %s", p.name(ev.Stabber), p.name(ev.Stabbable))
	case *event.Unstabbed:
		c = releaseColor
		text = fmt.Sprintf("%s pulled out of %s", p.name(ev.Stabber), p.name(ev.Stabbable))
	case *event.PullStarted:
		text = fmt.Sprintf("pulling %s from %.2f away", p.name(ev.Target), ev.StartDistance)
	case *event.RotationEngaged:
		text = fmt.Sprintf("%s starts rotating %.2f away", p.name(ev.Target), ev.Distance)
	case *event.PullSucceeded:
		c = attachColor
		text = fmt.Sprintf("pull of %s succeeded after %.2fs", p.name(ev.Target), ev.Elapsed)
	case *event.PullAborted:
		c = abortColor
		text = fmt.Sprintf("pull of %s aborted: %s", p.name(ev.Target), ev.Reason)
	}
	if _, err := frameColor.Fprintf(p.w, "[%4d] ", frame); err != nil {
		return err
	}
	_, err := c.Fprintln(p.w, text)
	return err
}
