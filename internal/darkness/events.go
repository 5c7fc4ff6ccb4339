package darkness

// Event types published on a region's subject.
const (
	EventWaveApproaching = "wave-approaching"
	EventWaveActive      = "wave-active"
	EventWaveEnded       = "wave-ended"
	EventWaveCleared     = "wave-cleared"
	EventRescue          = "rescue"
)

// WaveApproaching announces the upcoming wave while the warning phase runs.
type WaveApproaching struct {
	Region         string  `json:"region"`
	Wave           int     `json:"wave"`
	WarningSeconds float64 `json:"warning_seconds"`
}

// WaveActive announces that the darkness has arrived.
type WaveActive struct {
	Region        string  `json:"region"`
	Wave          int     `json:"wave"`
	ActiveSeconds float64 `json:"active_seconds"`
}

// WaveEnded carries the occupant accounting for the wave that just finished.
type WaveEnded struct {
	Region     string `json:"region"`
	Wave       int    `json:"wave"`
	Endangered int    `json:"endangered"`
	Rescued    int    `json:"rescued"`
}

// WaveCleared announces the region is back to calm.
type WaveCleared struct {
	Region string `json:"region"`
	Wave   int    `json:"wave"`
}

// Rescue names the occupant pulled to safety and who reached them. Social
// credit scoring downstream consumes this.
type Rescue struct {
	Region   string `json:"region"`
	Wave     int    `json:"wave"`
	Occupant string `json:"occupant"`
	Rescuer  string `json:"rescuer"`
}
