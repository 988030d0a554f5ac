package config

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultTicks = 100

// Point is a (row, col) pair written in YAML as a two-element sequence: [4, 15].
type Point struct {
	Row int
	Col int
}

// UnmarshalYAML decodes a [row, col] sequence.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var pair []int
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: point must be [row, col]: %w", value.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: point must have 2 values, got %d", value.Line, len(pair))
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the point as a flow sequence.
func (p Point) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{p.Row, p.Col} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

// Wall is a straight run of obstacles along one row or one column,
// covering From..To inclusive.
type Wall struct {
	Row  *int `yaml:"row,omitempty"`
	Col  *int `yaml:"col,omitempty"`
	From int  `yaml:"from"`
	To   int  `yaml:"to"`
}

// RandomPlacement asks for extra actors dropped on distinct open cells.
type RandomPlacement struct {
	Zombies int   `yaml:"zombies"`
	Humans  int   `yaml:"humans"`
	Seed    int64 `yaml:"seed"`
}

// Scenario describes a starting map: grid size, static obstacles and actors.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Height      int             `yaml:"height"`
	Width       int             `yaml:"width"`
	Ticks       int             `yaml:"ticks"`
	Obstacles   []Point         `yaml:"obstacles"`
	Walls       []Wall          `yaml:"walls"`
	Zombies     []Point         `yaml:"zombies"`
	Humans      []Point         `yaml:"humans"`
	Random      RandomPlacement `yaml:"random"`
}

// LoadScenario reads, defaults and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// ParseScenario decodes YAML bytes. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	applyDefaults(&sc)
	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Marshal encodes the scenario back to YAML.
func (sc *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

func applyDefaults(sc *Scenario) {
	if sc.Ticks <= 0 {
		sc.Ticks = defaultTicks
	}
}

func validateScenario(sc *Scenario) error {
	if sc.Height <= 0 || sc.Width <= 0 {
		return fmt.Errorf("height and width must be positive, got %dx%d", sc.Height, sc.Width)
	}
	inBounds := func(p Point) bool {
		return p.Row >= 0 && p.Col >= 0 && p.Row < sc.Height && p.Col < sc.Width
	}
	groups := []struct {
		field string
		pts   []Point
	}{
		{"obstacles", sc.Obstacles},
		{"zombies", sc.Zombies},
		{"humans", sc.Humans},
	}
	for _, g := range groups {
		for i, p := range g.pts {
			if !inBounds(p) {
				return fmt.Errorf("%s[%d] = [%d, %d] is outside %dx%d", g.field, i, p.Row, p.Col, sc.Height, sc.Width)
			}
		}
	}
	for i, w := range sc.Walls {
		if (w.Row == nil) == (w.Col == nil) {
			return fmt.Errorf("walls[%d]: exactly one of row or col is required", i)
		}
		if w.From > w.To {
			return fmt.Errorf("walls[%d]: from %d is after to %d", i, w.From, w.To)
		}
		for _, p := range w.cells() {
			if !inBounds(p) {
				return fmt.Errorf("walls[%d] reaches [%d, %d] outside %dx%d", i, p.Row, p.Col, sc.Height, sc.Width)
			}
		}
	}
	if sc.Random.Zombies < 0 || sc.Random.Humans < 0 {
		return errors.New("random counts must not be negative")
	}
	return nil
}

func (w Wall) cells() []Point {
	out := make([]Point, 0, w.To-w.From+1)
	for i := w.From; i <= w.To; i++ {
		if w.Row != nil {
			out = append(out, Point{Row: *w.Row, Col: i})
		} else {
			out = append(out, Point{Row: i, Col: *w.Col})
		}
	}
	return out
}

// ObstacleCells returns the explicit obstacles followed by every wall cell.
// A cell covered twice is listed twice.
func (sc *Scenario) ObstacleCells() []Point {
	out := append([]Point(nil), sc.Obstacles...)
	for _, w := range sc.Walls {
		out = append(out, w.cells()...)
	}
	return out
}

// Placement returns the fixed actors plus the random ones. Random actors go
// on distinct open cells not already holding a fixed actor. seed overrides
// Random.Seed when non-zero.
func (sc *Scenario) Placement(seed int64) (zombies, humans []Point, err error) {
	zombies = append([]Point(nil), sc.Zombies...)
	humans = append([]Point(nil), sc.Humans...)
	want := sc.Random.Zombies + sc.Random.Humans
	if want == 0 {
		return zombies, humans, nil
	}

	taken := make(map[Point]bool)
	for _, p := range sc.ObstacleCells() {
		taken[p] = true
	}
	for _, p := range zombies {
		taken[p] = true
	}
	for _, p := range humans {
		taken[p] = true
	}
	var free []Point
	for r := 0; r < sc.Height; r++ {
		for c := 0; c < sc.Width; c++ {
			if p := (Point{r, c}); !taken[p] {
				free = append(free, p)
			}
		}
	}
	if want > len(free) {
		return nil, nil, fmt.Errorf("random placement wants %d cells, only %d free", want, len(free))
	}

	if seed == 0 {
		seed = sc.Random.Seed
	}
	rng := NewRand(seed)
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	zombies = append(zombies, free[:sc.Random.Zombies]...)
	humans = append(humans, free[sc.Random.Zombies:want]...)
	return zombies, humans, nil
}

// NewRand returns a seeded generator. Seed 0 is mapped to 1.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic placement
}

// DefaultScenario is the built-in 20x30 map with an L-shaped wall, used when
// no scenario file is given.
func DefaultScenario() *Scenario {
	col, row := 15, 15
	return &Scenario{
		Name:        "default",
		Description: "L-shaped wall between the pack and the survivors",
		Height:      20,
		Width:       30,
		Ticks:       defaultTicks,
		Walls: []Wall{
			{Col: &col, From: 4, To: 15},
			{Row: &row, From: 10, To: 14},
		},
		Zombies: []Point{{18, 14}, {18, 20}},
		Humans:  []Point{{14, 24}, {7, 24}, {2, 22}},
	}
}
