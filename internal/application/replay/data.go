package replay

// Version is the replay file format version
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	W  bool `json:"w,omitempty"`  // Forward
	S  bool `json:"s,omitempty"`  // Back
	A  bool `json:"a,omitempty"`  // Strafe left
	D  bool `json:"d,omitempty"`  // Strafe right
	TL bool `json:"tl,omitempty"` // Turn left
	TR bool `json:"tr,omitempty"` // Turn right
	LU bool `json:"lu,omitempty"` // Look up
	LD bool `json:"ld,omitempty"` // Look down
	JP bool `json:"jp,omitempty"` // JumpPressed
	SP bool `json:"sp,omitempty"` // SprintPressed
	CP bool `json:"cp,omitempty"` // CrouchPressed
}

// ReplayData contains all data needed to replay a sandbox session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	TickRate  int          `json:"tickRate"`
	Frames    []FrameInput `json:"frames"`
}
