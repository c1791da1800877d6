package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario scripts the synthetic source through a sequence of phases.
// The source interpolates its chemistry toward each step's targets over
// the step's duration, so a script like calm -> escalation -> recovery
// exercises every ring and atmosphere branch without a backend.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Loop        bool           `yaml:"loop"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one scripted phase.
type ScenarioStep struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`

	Dopamine  float64 `yaml:"dopamine"`
	Serotonin float64 `yaml:"serotonin"`
	Cortisol  float64 `yaml:"cortisol"`
	Adenosine float64 `yaml:"adenosine"`
	Oxytocin  float64 `yaml:"oxytocin"`

	ActivationGain float64 `yaml:"activation_gain"`
	AudioLevel     float64 `yaml:"audio_level"`
	Trauma         string  `yaml:"trauma"`
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	for i, step := range scenario.Steps {
		if step.Duration <= 0 {
			return nil, fmt.Errorf("scenario step %d (%s) needs a positive duration", i+1, step.Name)
		}
	}
	return &scenario, nil
}

// Total returns the scripted length in seconds.
func (sc *Scenario) Total() float64 {
	total := 0.0
	for _, s := range sc.Steps {
		total += s.Duration
	}
	return total
}

// At resolves the phase at time t: the active step, the upcoming one,
// and the blend fraction between them. Looping scenarios wrap; finite
// ones hold their last step.
func (sc *Scenario) At(t float64) (current, next ScenarioStep, blend float64) {
	total := sc.Total()
	if t < 0 {
		t = 0
	}
	if t >= total {
		if !sc.Loop {
			last := sc.Steps[len(sc.Steps)-1]
			return last, last, 1
		}
		for t >= total {
			t -= total
		}
	}

	elapsed := 0.0
	for i, step := range sc.Steps {
		if t < elapsed+step.Duration {
			upcoming := sc.Steps[(i+1)%len(sc.Steps)]
			if !sc.Loop && i == len(sc.Steps)-1 {
				upcoming = step
			}
			return step, upcoming, (t - elapsed) / step.Duration
		}
		elapsed += step.Duration
	}
	last := sc.Steps[len(sc.Steps)-1]
	return last, last, 1
}
