package edl

import (
	"sideline/internal/logging"
	"sideline/internal/timecode"
)

// ComputeAdaptivePadding assigns each event its lead-in and lead-out context.
// Types with dedicated windows use them instead of the default; goals earn a
// pre bonus when build-up or attack signals are present and a post bonus when
// a celebration signal is present. Both values clamp to the configured
// maxima. Call this exactly once per event: a second pass after the signal
// list changed would re-apply bonuses.
func (p *Planner) ComputeAdaptivePadding() []*Event {
	padding := p.cfg.Padding

	for _, event := range p.events {
		pre := padding.Default.Pre
		post := padding.Default.Post

		switch event.Type {
		case TypeGoal:
			if event.HasSignal(SignalBuildUp) || event.HasSignal(SignalAttack) {
				pre += padding.Goal.PreBonusOnAttack
			}
			if event.HasSignal(SignalCelebration) {
				post += padding.Goal.PostBonusOnCelebration
			}
		case TypeBigSave, TypeSave:
			pre = padding.Save.Pre
			post = padding.Save.Post
		case TypeChance:
			pre = padding.Chance.Pre
			post = padding.Chance.Post
		case TypeFoul, TypeCard:
			pre = padding.FoulOrCard.Pre
			post = padding.FoulOrCard.Post
		}

		event.PrePadding = min(pre, padding.MaxPre)
		event.PostPadding = min(post, padding.MaxPost)

		p.logger.Debug("clip plan",
			logging.String(logging.FieldEventType, event.Type),
			logging.String("at", timecode.FormatTimestamp(event.AbsTS)),
			logging.Float64("pre_padding", event.PrePadding),
			logging.Float64("post_padding", event.PostPadding),
			logging.Float64("duration", event.Duration()),
		)
	}
	return p.events
}

// ApplyFeatureFlags sets the zoom flag uniformly from config and the replay
// flag per event from the replay-eligible type list.
func (p *Planner) ApplyFeatureFlags() []*Event {
	replayTypes := make(map[string]struct{}, len(p.cfg.Replay.EnableFor))
	for _, name := range p.cfg.Replay.EnableFor {
		replayTypes[name] = struct{}{}
	}
	for _, event := range p.events {
		event.ZoomEnabled = p.cfg.Zoom.Enable
		_, event.ReplayEnabled = replayTypes[event.Type]
	}
	return p.events
}

// ValidateClipDurations adjusts paddings so every clip lands inside the
// configured duration bounds. Short clips extend their post padding by the
// shortfall; long clips shrink both paddings by the same ratio, preserving
// the pre:post split so the excess comes off both ends proportionally.
func (p *Planner) ValidateClipDurations() []*Event {
	minLen := p.cfg.Limits.MinClipLen
	maxLen := p.cfg.Limits.MaxClipLen

	for _, event := range p.events {
		total := event.Duration()
		switch {
		case total < minLen:
			event.PostPadding += minLen - total
			p.logger.Info("extended clip to minimum duration",
				logging.String(logging.FieldEventType, event.Type),
				logging.Float64("min_clip_len", minLen),
			)
		case total > maxLen:
			scale := maxLen / total
			event.PrePadding *= scale
			event.PostPadding *= scale
			p.logger.Info("reduced clip to maximum duration",
				logging.String(logging.FieldEventType, event.Type),
				logging.Float64("max_clip_len", maxLen),
			)
		}
	}
	return p.events
}
