package feed

import (
	"sort"

	"github.com/san-kum/glassbrain/internal/brain"
)

// ScenarioPresets are the built-in scripts for the synthetic source.
// Between them they reach every ring state, atmosphere extreme, and
// plasticity regime, so the full visual range can be demoed without a
// backend or a scenario file.
var ScenarioPresets = map[string]*Scenario{
	"calm": {
		Name:        "calm",
		Description: "steady baseline with gentle drift",
		Loop:        true,
		Steps: []ScenarioStep{
			{Name: "rest", Duration: 30, Dopamine: 0.45, Serotonin: 0.7, Cortisol: 0.1, Adenosine: 0.25, Oxytocin: 0.6, ActivationGain: 0.8, AudioLevel: 0.4},
			{Name: "drift", Duration: 30, Dopamine: 0.55, Serotonin: 0.65, Cortisol: 0.15, Adenosine: 0.35, Oxytocin: 0.55, ActivationGain: 0.9, AudioLevel: 0.5},
		},
	},
	"stress": {
		Name:        "stress",
		Description: "escalation through firefighter response and back",
		Loop:        true,
		Steps: []ScenarioStep{
			{Name: "baseline", Duration: 20, Dopamine: 0.5, Serotonin: 0.6, Cortisol: 0.2, Adenosine: 0.2, Oxytocin: 0.5, ActivationGain: 1.0, AudioLevel: 0.5},
			{Name: "escalation", Duration: 15, Dopamine: 0.45, Serotonin: 0.4, Cortisol: 0.7, Adenosine: 0.15, Oxytocin: 0.35, ActivationGain: 1.4, AudioLevel: 0.8, Trauma: brain.TraumaEscalating},
			{Name: "firefight", Duration: 10, Dopamine: 0.3, Serotonin: 0.25, Cortisol: 0.95, Adenosine: 0.1, Oxytocin: 0.25, ActivationGain: 1.8, AudioLevel: 1.0, Trauma: brain.TraumaFirefighter},
			{Name: "recovery", Duration: 25, Dopamine: 0.45, Serotonin: 0.6, Cortisol: 0.35, Adenosine: 0.3, Oxytocin: 0.55, ActivationGain: 0.9, AudioLevel: 0.5, Trauma: brain.TraumaRecovering},
			{Name: "stable", Duration: 10, Dopamine: 0.5, Serotonin: 0.75, Cortisol: 0.15, Adenosine: 0.25, Oxytocin: 0.6, ActivationGain: 1.0, AudioLevel: 0.5, Trauma: brain.TraumaStable},
		},
	},
	"sleep": {
		Name:        "sleep",
		Description: "adenosine climb into deep sleep and REM",
		Loop:        true,
		Steps: []ScenarioStep{
			{Name: "drowsy", Duration: 20, Dopamine: 0.4, Serotonin: 0.6, Cortisol: 0.15, Adenosine: 0.6, Oxytocin: 0.5, ActivationGain: 0.6, AudioLevel: 0.3},
			{Name: "deep", Duration: 40, Dopamine: 0.2, Serotonin: 0.5, Cortisol: 0.1, Adenosine: 0.95, Oxytocin: 0.45, ActivationGain: 0.3, AudioLevel: 0.2},
			{Name: "rem", Duration: 20, Dopamine: 0.6, Serotonin: 0.45, Cortisol: 0.2, Adenosine: 0.7, Oxytocin: 0.5, ActivationGain: 1.1, AudioLevel: 0.3},
		},
	},
	"focus": {
		Name:        "focus",
		Description: "dopamine-driven flow state with fatigue tail",
		Loop:        true,
		Steps: []ScenarioStep{
			{Name: "warmup", Duration: 10, Dopamine: 0.5, Serotonin: 0.55, Cortisol: 0.25, Adenosine: 0.2, Oxytocin: 0.45, ActivationGain: 1.0, AudioLevel: 0.6},
			{Name: "flow", Duration: 40, Dopamine: 0.85, Serotonin: 0.6, Cortisol: 0.25, Adenosine: 0.25, Oxytocin: 0.5, ActivationGain: 1.3, AudioLevel: 0.7},
			{Name: "fatigue", Duration: 20, Dopamine: 0.5, Serotonin: 0.5, Cortisol: 0.3, Adenosine: 0.55, Oxytocin: 0.45, ActivationGain: 0.8, AudioLevel: 0.5},
		},
	},
}

func GetScenarioPreset(name string) *Scenario {
	sc, ok := ScenarioPresets[name]
	if !ok {
		return nil
	}
	return sc
}

func ListScenarioPresets() []string {
	names := make([]string, 0, len(ScenarioPresets))
	for name := range ScenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
