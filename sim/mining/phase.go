package mining

import "fmt"

// Phase is the stage of the cycle a truck is currently in.
type Phase int

const (
	AtMiningSite Phase = iota
	Traveling
	WaitingInQueue
	AtUnloadStation
)

var phaseNames = map[Phase]string{
	AtMiningSite:    "AtMiningSite",
	Traveling:       "Traveling",
	WaitingInQueue:  "WaitingInQueue",
	AtUnloadStation: "AtUnloadStation",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler so phases render by name in
// JSON and YAML output.
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for ph, name := range phaseNames {
		if name == string(text) {
			*p = ph
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(text))
}

// TruckRecord holds one truck's cumulative counters. Times are in minutes.
// A record is mutated only by its own truck's continuations and is returned
// to callers as a snapshot once the run ends.
type TruckRecord struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	TimeSpentMining    float64 `json:"time_spent_mining"`
	TimesMined         int     `json:"times_mined"`
	TimeSpentTraveling float64 `json:"time_spent_traveling"`
	TimesUnloaded      int     `json:"times_unloaded"`
	TimeInQueue        float64 `json:"time_in_queue"`
	TimesQueued        int     `json:"times_queued"`
	CurrentPhase       Phase   `json:"current_phase"`
}

// AvgTimeMining returns the mean length of a completed mining session, or 0
// if none completed.
func (r TruckRecord) AvgTimeMining() float64 {
	if r.TimesMined == 0 {
		return 0
	}
	return r.TimeSpentMining / float64(r.TimesMined)
}

// AvgTimeQueued returns the mean wait per queue visit, or 0 if the truck
// never queued.
func (r TruckRecord) AvgTimeQueued() float64 {
	if r.TimesQueued == 0 {
		return 0
	}
	return r.TimeInQueue / float64(r.TimesQueued)
}

// AccountedTime is the virtual time covered by completed phases plus queue
// waits. It can never exceed the horizon.
func (r TruckRecord) AccountedTime() float64 {
	return r.TimeSpentMining + r.TimeSpentTraveling + UnloadMinutes*float64(r.TimesUnloaded) + r.TimeInQueue
}
