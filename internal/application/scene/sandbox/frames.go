package sandbox

import (
	"github.com/younwookim/parkour/internal/application/replay"
	"github.com/younwookim/parkour/internal/application/system"
)

// toFrame converts live input to its recorded form.
// Session keys (pause, save, debug) are not recorded.
func toFrame(in system.InputState) replay.FrameInput {
	return replay.FrameInput{
		W:  in.Forward,
		S:  in.Back,
		A:  in.Left,
		D:  in.Right,
		TL: in.TurnL,
		TR: in.TurnR,
		LU: in.LookUp,
		LD: in.LookDown,
		JP: in.JumpPressed,
		SP: in.SprintPressed,
		CP: in.CrouchPressed,
	}
}

// fromFrame converts a recorded frame back to input
func fromFrame(fi replay.FrameInput) system.InputState {
	return system.InputState{
		Forward:       fi.W,
		Back:          fi.S,
		Left:          fi.A,
		Right:         fi.D,
		TurnL:         fi.TL,
		TurnR:         fi.TR,
		LookUp:        fi.LU,
		LookDown:      fi.LD,
		JumpPressed:   fi.JP,
		SprintPressed: fi.SP,
		CrouchPressed: fi.CP,
	}
}
