package entity

import "fmt"

// Stage es la posición de un contacto dentro del pipeline de ventas.
type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageFollowUp  Stage = "follow_up"
	StagePurchased Stage = "purchased"
	StageLost      Stage = "lost"
)

// Stages is the canonical pipeline order. Board columns and the
// stage_order column are both derived from the index in this slice.
var Stages = []Stage{StageNew, StageContacted, StageFollowUp, StagePurchased, StageLost}

var stageLabels = map[Stage]string{
	StageNew:       "Nuevo",
	StageContacted: "Contactado",
	StageFollowUp:  "Seguimiento",
	StagePurchased: "Compró",
	StageLost:      "Perdido",
}

var stageColors = map[Stage]string{
	StageNew:       "blue",
	StageContacted: "purple",
	StageFollowUp:  "amber",
	StagePurchased: "green",
	StageLost:      "red",
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !stage.Valid() {
		return "", fmt.Errorf("etapa inválida: %q", s)
	}
	return stage, nil
}

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Order returns the fixed index of the stage in the canonical list.
// This is the value persisted as stage_order.
func (s Stage) Order() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

func (s Stage) Label() string {
	return stageLabels[s]
}

func (s Stage) Color() string {
	return stageColors[s]
}

// CanMoveTo reports whether a contact may move from s to target.
// Any valid target is allowed: the pipeline order is a convention for the
// board, not an enforced transition graph. The edit dialog and the
// drag-and-drop both rely on this being permissive.
func (s Stage) CanMoveTo(target Stage) bool {
	return target.Valid()
}
