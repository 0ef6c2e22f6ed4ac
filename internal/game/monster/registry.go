package monster

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/game/world"
)

// Registry owns all live monster instances. Instances are indexed by ID and,
// as a derived secondary index, by room in spawn order. Spawn order matters:
// target disambiguation ("kobold 2") counts instances first-seen-first.
//
// The registry is passed explicitly to every caller that needs it; there is
// no package-level instance.
type Registry struct {
	library   Library
	instances map[string]*Instance
	roomIndex map[string][]string // roomID → instance IDs in spawn order
	logger    *zap.Logger
}

// NewRegistry creates an empty Registry over the given template library.
//
// Precondition: library and logger must be non-nil.
func NewRegistry(library Library, logger *zap.Logger) *Registry {
	return &Registry{
		library:   library,
		instances: make(map[string]*Instance),
		roomIndex: make(map[string][]string),
		logger:    logger,
	}
}

// Spawn creates a new instance of templateID in roomID.
//
// Postcondition: Returns the registered instance, or an error when the
// template is unknown.
func (r *Registry) Spawn(templateID, roomID string) (*Instance, error) {
	tmpl, ok := r.library.Get(templateID)
	if !ok {
		return nil, fmt.Errorf("monster: unknown template %q", templateID)
	}
	roomID = world.NormalizeID(roomID)

	inst := NewInstance(tmpl, roomID)
	r.instances[inst.ID] = inst
	r.roomIndex[roomID] = append(r.roomIndex[roomID], inst.ID)

	r.logger.Debug("monster spawned",
		zap.String("instance", inst.ID),
		zap.String("template", tmpl.ID),
		zap.String("room", roomID),
	)
	return inst, nil
}

// Get returns the instance with the given ID.
func (r *Registry) Get(id string) (*Instance, bool) {
	inst, ok := r.instances[id]
	return inst, ok
}

// InstancesIn returns the live instances in roomID, in spawn order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (r *Registry) InstancesIn(roomID string) []*Instance {
	ids := r.roomIndex[world.NormalizeID(roomID)]
	out := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		if inst, ok := r.instances[id]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// Despawn removes an instance from the registry and its room index. Instances
// are only ever destroyed through this call, on death or manual removal.
//
// Postcondition: Returns an error if the instance is not found.
func (r *Registry) Despawn(id string) error {
	inst, ok := r.instances[id]
	if !ok {
		return fmt.Errorf("monster instance %q not found", id)
	}

	ids := r.roomIndex[inst.RoomID]
	for i, rid := range ids {
		if rid == id {
			r.roomIndex[inst.RoomID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.roomIndex[inst.RoomID]) == 0 {
		delete(r.roomIndex, inst.RoomID)
	}
	delete(r.instances, id)

	r.logger.Debug("monster despawned",
		zap.String("instance", id),
		zap.String("room", inst.RoomID),
	)
	return nil
}

// Count returns the total number of live instances.
func (r *Registry) Count() int { return len(r.instances) }

// InitRegionSpawns walks each region's declared spawn lists and creates the
// declared initial count of each template per room. This runs once at region
// load; an unknown template is logged and skipped rather than failing the
// whole region.
func (r *Registry) InitRegionSpawns(regions []*world.Region) {
	for _, region := range regions {
		for _, room := range region.Rooms {
			for _, sp := range room.Spawns {
				for n := 0; n < sp.Count; n++ {
					if _, err := r.Spawn(sp.Template, room.ID); err != nil {
						r.logger.Warn("region spawn failed",
							zap.String("region", region.ID),
							zap.String("room", room.ID),
							zap.String("template", sp.Template),
							zap.Error(err),
						)
						break
					}
				}
			}
		}
	}
}
