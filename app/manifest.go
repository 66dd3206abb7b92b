package app

import (
	"github.com/hafilati/hafilati-be/model"
)

// GroupManifest folds flat manifest rows into per-gate pickup groups,
// preserving the row order within each gate.
func GroupManifest(entries []*model.ManifestEntry) []*model.ManifestGate {
	gates := []*model.ManifestGate{}
	byGate := make(map[int64]*model.ManifestGate)
	for _, entry := range entries {
		gate, ok := byGate[entry.GateId]
		if !ok {
			gate = &model.ManifestGate{
				GateId:   entry.GateId,
				GateName: entry.GateName,
				Lat:      entry.GateLat,
				Lng:      entry.GateLng,
				Students: []*model.ManifestEntry{},
			}
			byGate[entry.GateId] = gate
			gates = append(gates, gate)
		}
		gate.Students = append(gate.Students, entry)
	}
	return gates
}
