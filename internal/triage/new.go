package triage

import (
	pkgLog "qa-triage-assistant/pkg/log"
)

// New creates the triage UseCase over injected collaborator handles.
func New(
	l pkgLog.Logger,
	policy Policy,
	summarizer Summarizer,
	notifier Notifier,
	filer BugFiler,
) UseCase {
	if policy.AutoFileThreshold == 0 {
		policy.AutoFileThreshold = DefaultAutoFileThreshold
	}

	return &usecase{
		scorer:     NewScorer(DefaultCatalog()),
		policy:     policy,
		summarizer: summarizer,
		notifier:   notifier,
		filer:      filer,
		l:          l,
	}
}
