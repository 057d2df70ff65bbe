// Package needs implements the motivational drive channels that govern
// creature behavior.
package needs

// Drive identifies a motivational channel.
type Drive uint8

const (
	Hunger Drive = iota
	Thirst
	Sleep
	Libido
	Fear
	Social

	DriveCount

	// None is returned by ActiveDrive when every channel is latent.
	None Drive = DriveCount
)

// String returns the drive name for logs and diagnostics.
func (d Drive) String() string {
	switch d {
	case Hunger:
		return "hunger"
	case Thirst:
		return "thirst"
	case Sleep:
		return "sleep"
	case Libido:
		return "libido"
	case Fear:
		return "fear"
	case Social:
		return "social"
	}
	return "unknown"
}

// fearDecayRate is the fixed urgency decay per second when no threat is
// visible. Fear never rises on its own.
const fearDecayRate = 0.25

// fearOverrideThreshold is the urgency above which Fear preempts every
// other drive.
const fearOverrideThreshold = 0.5

// Needs holds the drive state for one creature. Fixed arrays keyed by
// Drive keep the update loops generic.
type Needs struct {
	Urgency   [DriveCount]float32 // Current urgency in [0,1]
	CraveRate [DriveCount]float32 // Rise per second; 0 = latent
	Desire    [DriveCount]float32 // Priority multiplier, default 1
}

// New returns a Needs with the given crave rates and neutral desires.
func New(craveRates [DriveCount]float32) Needs {
	n := Needs{CraveRate: craveRates}
	for i := range n.Desire {
		n.Desire[i] = 1
	}
	return n
}

// Tick advances every channel except Fear by craveRate*dt, clamped to 1.
// Fear only decays here; RaiseFear is the sole way it rises.
func (n *Needs) Tick(dt float32) {
	for d := Drive(0); d < DriveCount; d++ {
		if d == Fear {
			continue
		}
		u := n.Urgency[d] + n.CraveRate[d]*dt
		if u > 1 {
			u = 1
		}
		n.Urgency[d] = u
	}

	f := n.Urgency[Fear] - fearDecayRate*dt
	if f < 0 {
		f = 0
	}
	n.Urgency[Fear] = f
}

// RaiseFear raises Fear from a visible threat. distNorm is the threat
// distance normalized to vision range (0 = adjacent, 1 = edge of vision);
// sensitivity comes from the genome.
func (n *Needs) RaiseFear(distNorm, sensitivity, dt float32) {
	if distNorm < 0 {
		distNorm = 0
	} else if distNorm > 1 {
		distNorm = 1
	}
	// Counteract this tick's decay so a held stimulus holds the level.
	rise := (1-distNorm)*sensitivity*3*dt + fearDecayRate*dt
	f := n.Urgency[Fear] + rise
	if f > 1 {
		f = 1
	}
	n.Urgency[Fear] = f
}

// Satisfy lowers a drive's urgency, floored at 0.
func (n *Needs) Satisfy(d Drive, amount float32) {
	u := n.Urgency[d] - amount
	if u < 0 {
		u = 0
	}
	n.Urgency[d] = u
}

// ActiveDrive resolves which drive governs behavior this tick.
// Fear above its override threshold wins unconditionally. Otherwise the
// highest weighted urgency among non-latent channels wins; channels with
// a zero crave rate are skipped even if their stored urgency is nonzero.
func (n *Needs) ActiveDrive() Drive {
	if n.Urgency[Fear] > fearOverrideThreshold {
		return Fear
	}

	best := None
	var bestScore float32 = -1
	for d := Drive(0); d < DriveCount; d++ {
		if d == Fear || n.CraveRate[d] == 0 {
			continue
		}
		score := n.Urgency[d] * n.Desire[d]
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best
}

// IsCritical reports whether a drive has reached a death-triggering level.
func (n *Needs) IsCritical(d Drive) bool {
	switch d {
	case Thirst:
		return n.Urgency[Thirst] >= 1.0
	}
	return false
}
