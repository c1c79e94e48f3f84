// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package lifecycle

import (
	"context"

	"github.com/aurumledger/localnet/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

// CleanupState removes everything bring-up generated under the working
// directory, so the next run starts from a clean slate.
type CleanupState struct {
	prep *workspace.Preparer
}

func NewCleanupState(prep *workspace.Preparer) *CleanupState {
	return &CleanupState{prep: prep}
}

func (s *CleanupState) Name() string {
	return "cleanup"
}

func (s *CleanupState) Run(ctx context.Context) Event {
	log.Debugf("removing generated artifacts from %s", s.prep.WorkDir())
	if err := s.prep.RemoveGenerated(); err != nil {
		log.Error(err)
		return UnresolvableError
	}
	return Finish
}
