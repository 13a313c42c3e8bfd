// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package auto

import (
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	log "github.com/sirupsen/logrus"
)

// Search is a strategy for deferred hypotheses which discharges a statement
// using an active essential hypothesis with identical terms, or else the
// first registered assertion without essential hypotheses whose statement
// matches it.
var Search composer.Strategy = composer.StrategyFunc(search)

func search(c *composer.Composer, stmt *ast.Statement) (*composer.Proof, error) {
	for _, h := range c.AllHypotheses() {
		if h.Statement().SameTerms(stmt) {
			return h.AsProof()
		}
	}
	//
	for _, th := range c.Theorems() {
		kind := th.Statement().Kind
		//
		if !kind.IsAssertion() || len(th.Essentials()) != 0 {
			continue
		}
		//
		if proof, err := th.MatchAndApply(stmt, nil); err == nil {
			log.Debugf("found %s for `%s`", th.Label(), stmt)
			return proof, nil
		}
	}
	//
	return nil, composer.Errorf(composer.UnificationFailure, "no assertion without hypotheses proves `%s`", stmt)
}
