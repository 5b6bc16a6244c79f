// rules.go
//
// SecurePulse wearable health monitoring service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of securepulse.
// securepulse is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// securepulse is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with securepulse.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package rules decides whether a vital-signs sample warrants an emergency alert.
package rules

import (
	"fmt"

	"github.com/localnerve/securepulse/internal/models"
)

// Heart rate limits in bpm. Readings strictly outside the range are anomalous.
const (
	MinHeartRate = 50
	MaxHeartRate = 120
)

// Sample is the subset of a health reading the rules look at.
type Sample struct {
	HeartRate   int
	BloodOxygen float64
	Temperature float64
	Steps       int
}

// Intent describes the alert a rule wants raised.
type Intent struct {
	Type        models.AlertType
	Description string
}

type Rule struct {
	Name     string
	Evaluate func(s Sample) (Intent, bool)
}

// HeartRateRule flags readings above MaxHeartRate or below MinHeartRate.
var HeartRateRule = Rule{
	Name: "heart_rate",
	Evaluate: func(s Sample) (Intent, bool) {
		if s.HeartRate > MaxHeartRate || s.HeartRate < MinHeartRate {
			return Intent{
				Type:        models.AlertHealth,
				Description: fmt.Sprintf("Abnormal heart rate detected: %d bpm", s.HeartRate),
			}, true
		}
		return Intent{}, false
	},
}

// DefaultRules only checks heart rate. Blood oxygen, temperature and steps are
// recorded but not evaluated.
var DefaultRules = []Rule{
	HeartRateRule,
}

// Engine evaluates rules in order; the first match wins.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

func Default() *Engine {
	return NewEngine(DefaultRules...)
}

// Evaluate is pure and safe for concurrent use.
func (e *Engine) Evaluate(s Sample) (Intent, bool) {
	for _, rule := range e.rules {
		if intent, ok := rule.Evaluate(s); ok {
			return intent, true
		}
	}
	return Intent{}, false
}

// Rules returns the names of the configured rules, in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, rule := range e.rules {
		names[i] = rule.Name
	}
	return names
}
