package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Region groups related rooms into a themed area loaded from one YAML file.
type Region struct {
	// ID uniquely identifies this region.
	ID string
	// Name is the display name of the region.
	Name string
	// Description summarizes the region's theme.
	Description string
	// StartRoom is the canonical ID of the region's entry room.
	StartRoom string
	// Rooms contains all rooms in this region, keyed by canonical room ID.
	Rooms map[string]*Room
}

// Validate checks region invariants. Exit targets are deliberately not
// checked here: exits may cross regions, and dangling targets are a
// diagnostic concern for Graph.VerifyLinks, not a load failure.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (r *Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region ID must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("region %q: name must not be empty", r.ID)
	}
	if r.StartRoom == "" {
		return fmt.Errorf("region %q: start_room must not be empty", r.ID)
	}
	if len(r.Rooms) == 0 {
		return fmt.Errorf("region %q: must contain at least one room", r.ID)
	}
	if _, ok := r.Rooms[r.StartRoom]; !ok {
		return fmt.Errorf("region %q: start_room %q not found in rooms", r.ID, r.StartRoom)
	}
	for id, room := range r.Rooms {
		if room.ID != id {
			return fmt.Errorf("region %q: room key %q does not match room ID %q", r.ID, id, room.ID)
		}
		if room.Name == "" {
			return fmt.Errorf("region %q: room %q: name must not be empty", r.ID, id)
		}
		if room.Description == "" {
			return fmt.Errorf("region %q: room %q: description must not be empty", r.ID, id)
		}
		for dir, target := range room.Exits {
			if _, ok := ParseDirection(string(dir)); !ok {
				return fmt.Errorf("region %q: room %q: unknown exit direction %q", r.ID, id, dir)
			}
			if target == "" {
				return fmt.Errorf("region %q: room %q: exit %q has empty target", r.ID, id, dir)
			}
		}
		for i, trig := range room.Triggers {
			if trig.Condition == CondRequiresItem && trig.Item == "" {
				return fmt.Errorf("region %q: room %q: trigger[%d] requires_item with empty item", r.ID, id, i)
			}
		}
		for i, sp := range room.Spawns {
			if sp.Template == "" {
				return fmt.Errorf("region %q: room %q: spawn[%d] has empty template", r.ID, id, i)
			}
			if sp.Count < 1 {
				return fmt.Errorf("region %q: room %q: spawn[%d] count must be >= 1", r.ID, id, i)
			}
		}
	}
	return nil
}

// yamlRegionFile is the top-level YAML structure for region files.
type yamlRegionFile struct {
	Region yamlRegion `yaml:"region"`
}

type yamlRegion struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	StartRoom   string     `yaml:"start_room"`
	Rooms       []yamlRoom `yaml:"rooms"`
}

// yamlCoords is the coordinate form of a room address. Region authoring tools
// emit these; the loader collapses them to the canonical string key.
type yamlCoords struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type yamlRoom struct {
	ID              string            `yaml:"id"`
	Coords          *yamlCoords       `yaml:"coords"`
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	LookDescription string            `yaml:"look_description"`
	Items           []string          `yaml:"items"`
	Exits           map[string]string `yaml:"exits"`
	ExamineTargets  map[string]string `yaml:"examine_targets"`
	Triggers        []yamlTrigger     `yaml:"triggers"`
	Spawns          []yamlSpawn       `yaml:"spawns"`
}

type yamlTrigger struct {
	Condition string `yaml:"condition"`
	Item      string `yaml:"item"`
	Effect    string `yaml:"effect"`
	Response  string `yaml:"response"`
}

type yamlSpawn struct {
	Template string `yaml:"template"`
	Count    int    `yaml:"count"`
}

// LoadRegionFromBytes parses and validates a region from YAML bytes. Room
// identifiers, exit targets, and spawn templates are normalized at this
// boundary; the rest of the engine only ever sees canonical IDs.
//
// Postcondition: Returns a validated Region or a non-nil error.
func LoadRegionFromBytes(data []byte) (*Region, error) {
	var file yamlRegionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing region YAML: %w", err)
	}

	region, err := convertYAMLRegion(file.Region)
	if err != nil {
		return nil, err
	}
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("validating region: %w", err)
	}
	return region, nil
}

// LoadRegionFromFile reads and validates a single region YAML file.
func LoadRegionFromFile(path string) (*Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region file %s: %w", path, err)
	}
	region, err := LoadRegionFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading region from %s: %w", path, err)
	}
	return region, nil
}

// LoadRegionsFromDir loads all YAML files in a directory as regions.
//
// Postcondition: Returns all validated regions or the first error encountered.
func LoadRegionsFromDir(dir string) ([]*Region, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading region directory %s: %w", dir, err)
	}

	var regions []*Region
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		region, err := LoadRegionFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("no region files found in %s", dir)
	}
	return regions, nil
}

func convertYAMLRegion(yr yamlRegion) (*Region, error) {
	region := &Region{
		ID:          NormalizeID(yr.ID),
		Name:        yr.Name,
		Description: yr.Description,
		Rooms:       make(map[string]*Room, len(yr.Rooms)),
	}
	region.StartRoom = NormalizeID(yr.StartRoom)

	for i, yroom := range yr.Rooms {
		id, err := roomIDFor(region.ID, yroom, i)
		if err != nil {
			return nil, err
		}

		room := &Room{
			ID:              id,
			RegionID:        region.ID,
			Name:            yroom.Name,
			Description:     strings.TrimSpace(yroom.Description),
			LookDescription: strings.TrimSpace(yroom.LookDescription),
			Items:           append([]string(nil), yroom.Items...),
			Exits:           make(map[Direction]string, len(yroom.Exits)),
			ExamineTargets:  yroom.ExamineTargets,
		}
		if room.LookDescription == "" {
			room.LookDescription = room.Description
		}
		if room.ExamineTargets == nil {
			room.ExamineTargets = make(map[string]string)
		}
		for dirStr, target := range yroom.Exits {
			dir, ok := ParseDirection(strings.ToLower(dirStr))
			if !ok {
				// Keep the raw spelling so Validate reports it.
				dir = Direction(dirStr)
			}
			room.Exits[dir] = NormalizeID(target)
		}
		for _, yt := range yroom.Triggers {
			room.Triggers = append(room.Triggers, Trigger{
				Condition: yt.Condition,
				Item:      NormalizeID(yt.Item),
				Effect:    yt.Effect,
				Response:  yt.Response,
			})
		}
		for _, ys := range yroom.Spawns {
			room.Spawns = append(room.Spawns, SpawnConfig{
				Template: NormalizeID(ys.Template),
				Count:    ys.Count,
			})
		}
		normalizedItems := make([]string, len(room.Items))
		for j, it := range room.Items {
			normalizedItems[j] = NormalizeID(it)
		}
		room.Items = normalizedItems

		region.Rooms[room.ID] = room
	}
	return region, nil
}

// roomIDFor resolves a room's identifier from whichever representation the
// YAML used: an explicit slug, or region-relative coordinates.
func roomIDFor(regionID string, yroom yamlRoom, index int) (string, error) {
	switch {
	case yroom.ID != "" && yroom.Coords != nil:
		return "", fmt.Errorf("region %q: room[%d] has both id and coords", regionID, index)
	case yroom.ID != "":
		return NormalizeID(yroom.ID), nil
	case yroom.Coords != nil:
		return RoomKey(regionID, yroom.Coords.X, yroom.Coords.Y, yroom.Coords.Z), nil
	default:
		return "", fmt.Errorf("region %q: room[%d] needs an id or coords", regionID, index)
	}
}
