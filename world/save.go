package world

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/genome"
	"github.com/Dev2150/prismata/needs"
	"github.com/Dev2150/prismata/species"
)

// Save file layout, little-endian throughout:
//
//	magic "PRSM" | version u32 | geneCount u32 | driveCount u32
//	simTime f64 | tickCount i64 | nextID u64
//	creature count u32, records | plant count u32, records
//	species count u32, records (names length-prefixed)
//
// Gene and drive counts are part of the header so a save taken before
// a genome or drive was added fails loudly instead of misparsing.

var saveMagic = [4]byte{'P', 'R', 'S', 'M'}

const saveVersion uint32 = 1

// creatureRecord is the fixed-size on-disk creature image.
type creatureRecord struct {
	ID         uint64
	ParentA    uint64
	ParentB    uint64
	Generation int32
	SpeciesID  int32

	PosX, PosY, PosZ float32
	VelX, VelZ       float32
	Heading          float32

	Genes     [genome.GeneCount]float32
	Urgency   [needs.DriveCount]float32
	CraveRate [needs.DriveCount]float32
	Desire    [needs.DriveCount]float32

	Energy    float32
	MaxEnergy float32
	Age       float32
	Lifespan  float32
	Mass      float32

	State          uint8
	Alive          uint8
	_              [2]uint8
	GestationTimer float32
	MateTargetID   uint64
}

// plantRecord is the fixed-size on-disk plant image.
type plantRecord struct {
	PosX, PosY, PosZ float32
	Type             uint8
	Alive            uint8
	_                [2]uint8
	Nutrition        float32
	GrowTimer        float32
	DeadTime         float32
}

// speciesFixed is the fixed-size prefix of a species record; the name
// follows as a u16-length-prefixed string.
type speciesFixed struct {
	ID           int32
	LivingCount  int32
	AllTimeCount int32
	ColorR       uint8
	ColorG       uint8
	ColorB       uint8
	_            uint8
	Centroid     [genome.GeneCount]float32
}

// Save writes the full world state to path. The file is written to a
// temporary sibling and renamed so a crash mid-write never clobbers an
// existing save.
func (w *World) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := w.writeSave(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing save: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flushing save: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing save: %w", err)
	}
	return os.Rename(tmp, path)
}

func (w *World) writeSave(out io.Writer) error {
	le := binary.LittleEndian

	if _, err := out.Write(saveMagic[:]); err != nil {
		return err
	}
	header := []any{
		saveVersion,
		uint32(genome.GeneCount),
		uint32(needs.DriveCount),
		w.SimTime,
		w.TickCount,
		uint64(w.nextID),
	}
	for _, v := range header {
		if err := binary.Write(out, le, v); err != nil {
			return err
		}
	}

	if err := binary.Write(out, le, uint32(len(w.Creatures))); err != nil {
		return err
	}
	for i := range w.Creatures {
		if err := binary.Write(out, le, encodeCreature(&w.Creatures[i])); err != nil {
			return err
		}
	}

	if err := binary.Write(out, le, uint32(len(w.Plants))); err != nil {
		return err
	}
	for i := range w.Plants {
		p := &w.Plants[i]
		rec := plantRecord{
			PosX: p.Pos.X, PosY: p.Pos.Y, PosZ: p.Pos.Z,
			Type:      uint8(p.Type),
			Alive:     boolByte(p.Alive),
			Nutrition: p.Nutrition,
			GrowTimer: p.GrowTimer,
			DeadTime:  p.DeadTime,
		}
		if err := binary.Write(out, le, rec); err != nil {
			return err
		}
	}

	if err := binary.Write(out, le, uint32(len(w.Species.Species))); err != nil {
		return err
	}
	for _, sp := range w.Species.Species {
		fixed := speciesFixed{
			ID:           sp.ID,
			LivingCount:  int32(sp.LivingCount),
			AllTimeCount: int32(sp.AllTimeCount),
			ColorR:       sp.Color.R,
			ColorG:       sp.Color.G,
			ColorB:       sp.Color.B,
			Centroid:     sp.Centroid.Genes,
		}
		if err := binary.Write(out, le, fixed); err != nil {
			return err
		}
		if err := writeString(out, sp.Name); err != nil {
			return err
		}
	}

	return nil
}

// Load replaces the world state with the contents of path. Everything
// is decoded into temporaries first; the world is only touched once the
// whole file has parsed.
func (w *World) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening save file: %w", err)
	}
	defer f.Close()

	return w.readSave(bufio.NewReader(f))
}

func (w *World) readSave(in io.Reader) error {
	le := binary.LittleEndian

	var magic [4]byte
	if _, err := io.ReadFull(in, magic[:]); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if magic != saveMagic {
		return fmt.Errorf("not a save file (magic %q)", magic[:])
	}

	var version, geneCount, driveCount uint32
	if err := binary.Read(in, le, &version); err != nil {
		return err
	}
	if version != saveVersion {
		return fmt.Errorf("unsupported save version %d (want %d)", version, saveVersion)
	}
	if err := binary.Read(in, le, &geneCount); err != nil {
		return err
	}
	if geneCount != uint32(genome.GeneCount) {
		return fmt.Errorf("save has %d genes, this build has %d", geneCount, genome.GeneCount)
	}
	if err := binary.Read(in, le, &driveCount); err != nil {
		return err
	}
	if driveCount != uint32(needs.DriveCount) {
		return fmt.Errorf("save has %d drives, this build has %d", driveCount, needs.DriveCount)
	}

	var simTime float64
	var tickCount int64
	var nextID uint64
	if err := binary.Read(in, le, &simTime); err != nil {
		return err
	}
	if err := binary.Read(in, le, &tickCount); err != nil {
		return err
	}
	if err := binary.Read(in, le, &nextID); err != nil {
		return err
	}

	var nCreatures uint32
	if err := binary.Read(in, le, &nCreatures); err != nil {
		return err
	}
	creatures := make([]components.Creature, nCreatures)
	for i := range creatures {
		var rec creatureRecord
		if err := binary.Read(in, le, &rec); err != nil {
			return fmt.Errorf("reading creature %d: %w", i, err)
		}
		creatures[i] = decodeCreature(&rec)
	}

	var nPlants uint32
	if err := binary.Read(in, le, &nPlants); err != nil {
		return err
	}
	plants := make([]components.Plant, nPlants)
	for i := range plants {
		var rec plantRecord
		if err := binary.Read(in, le, &rec); err != nil {
			return fmt.Errorf("reading plant %d: %w", i, err)
		}
		plants[i] = components.Plant{
			Pos:       components.Vec3{X: rec.PosX, Y: rec.PosY, Z: rec.PosZ},
			Type:      components.PlantType(rec.Type),
			Nutrition: rec.Nutrition,
			GrowTimer: rec.GrowTimer,
			DeadTime:  rec.DeadTime,
			Alive:     rec.Alive != 0,
		}
	}

	var nSpecies uint32
	if err := binary.Read(in, le, &nSpecies); err != nil {
		return err
	}
	records := make([]*species.Info, nSpecies)
	for i := range records {
		var fixed speciesFixed
		if err := binary.Read(in, le, &fixed); err != nil {
			return fmt.Errorf("reading species %d: %w", i, err)
		}
		name, err := readString(in)
		if err != nil {
			return fmt.Errorf("reading species %d name: %w", i, err)
		}
		info := &species.Info{
			ID:           fixed.ID,
			Name:         name,
			LivingCount:  int(fixed.LivingCount),
			AllTimeCount: int(fixed.AllTimeCount),
			Color:        species.Color{R: fixed.ColorR, G: fixed.ColorG, B: fixed.ColorB},
		}
		info.Centroid.Genes = fixed.Centroid
		records[i] = info
	}

	// Full file parsed; commit.
	w.Creatures = creatures
	w.Plants = plants
	w.Species.Restore(records)
	w.SimTime = simTime
	w.TickCount = tickCount
	w.nextID = components.ID(nextID)

	clear(w.slotByID)
	for i := range w.Creatures {
		w.slotByID[w.Creatures[i].ID] = i
	}

	return nil
}

func encodeCreature(c *components.Creature) creatureRecord {
	return creatureRecord{
		ID:         uint64(c.ID),
		ParentA:    uint64(c.ParentA),
		ParentB:    uint64(c.ParentB),
		Generation: c.Generation,
		SpeciesID:  c.SpeciesID,

		PosX: c.Pos.X, PosY: c.Pos.Y, PosZ: c.Pos.Z,
		VelX: c.Velocity.X, VelZ: c.Velocity.Z,
		Heading: c.Heading,

		Genes:     c.Genome.Genes,
		Urgency:   c.Needs.Urgency,
		CraveRate: c.Needs.CraveRate,
		Desire:    c.Needs.Desire,

		Energy:    c.Energy,
		MaxEnergy: c.MaxEnergy,
		Age:       c.Age,
		Lifespan:  c.Lifespan,
		Mass:      c.Mass,

		State:          uint8(c.State),
		Alive:          boolByte(c.Alive),
		GestationTimer: c.GestationTimer,
		MateTargetID:   uint64(c.MateTargetID),
	}
}

func decodeCreature(rec *creatureRecord) components.Creature {
	c := components.Creature{
		ID:         components.ID(rec.ID),
		ParentA:    components.ID(rec.ParentA),
		ParentB:    components.ID(rec.ParentB),
		Generation: rec.Generation,
		SpeciesID:  rec.SpeciesID,

		Pos:      components.Vec3{X: rec.PosX, Y: rec.PosY, Z: rec.PosZ},
		Velocity: components.Vec2{X: rec.VelX, Z: rec.VelZ},
		Heading:  rec.Heading,

		Energy:    rec.Energy,
		MaxEnergy: rec.MaxEnergy,
		Age:       rec.Age,
		Lifespan:  rec.Lifespan,
		Mass:      rec.Mass,
		Alive:     rec.Alive != 0,

		State:          components.State(rec.State),
		GestationTimer: rec.GestationTimer,
		MateTargetID:   components.ID(rec.MateTargetID),
	}
	c.Genome.Genes = rec.Genes
	c.Needs.Urgency = rec.Urgency
	c.Needs.CraveRate = rec.CraveRate
	c.Needs.Desire = rec.Desire
	c.Senses.Reset()
	return c
}

func writeString(out io.Writer, s string) error {
	if len(s) > 0xFFFF {
		s = s[:0xFFFF]
	}
	if err := binary.Write(out, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(out, s)
	return err
}

func readString(in io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(in, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(in, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
