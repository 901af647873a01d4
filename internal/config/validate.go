package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateEDL(); err != nil {
		return err
	}
	if err := c.validatePadding(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return errors.New("detection.min_confidence must be between 0 and 1")
	}
	if c.Detection.BucketSize <= 0 {
		return errors.New("detection.bucket_size must be positive")
	}
	for kind, weight := range c.Detection.Weights {
		if weight < 0 {
			return fmt.Errorf("detection.weights.%s must not be negative", kind)
		}
	}
	return nil
}

func (c *Config) validateEDL() error {
	if c.EDL.DedupeWindow < 0 {
		return errors.New("edl.dedupe_window must not be negative")
	}
	if c.EDL.MaxClips <= 0 {
		return errors.New("edl.max_clips must be positive")
	}
	if c.EDL.PromotionMargin < 0 || c.EDL.PromotionMargin > 1 {
		return errors.New("edl.promotion_margin must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePadding() error {
	windows := map[string]PaddingWindow{
		"padding.default":      c.Padding.Default,
		"padding.save":         c.Padding.Save,
		"padding.chance":       c.Padding.Chance,
		"padding.foul_or_card": c.Padding.FoulOrCard,
	}
	for section, window := range windows {
		if window.Pre < 0 || window.Post < 0 {
			return fmt.Errorf("%s pre/post must not be negative", section)
		}
	}
	if c.Padding.Goal.PreBonusOnAttack < 0 || c.Padding.Goal.PostBonusOnCelebration < 0 {
		return errors.New("padding.goal bonuses must not be negative")
	}
	if c.Padding.MaxPre <= 0 || c.Padding.MaxPost <= 0 {
		return errors.New("padding.max_pre and padding.max_post must be positive")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.MinClipLen <= 0 {
		return errors.New("limits.min_clip_len must be positive")
	}
	if c.Limits.MaxClipLen < c.Limits.MinClipLen {
		return errors.New("limits.max_clip_len must be at least limits.min_clip_len")
	}
	return nil
}

func (c *Config) validateMatch() error {
	if c.Match.FirstHalfMinutes <= 0 {
		return errors.New("match.first_half_minutes must be positive")
	}
	if c.Match.HalfTimeMinutes < 0 {
		return errors.New("match.half_time_minutes must not be negative")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.TimeoutSeconds <= 0 {
		return errors.New("render.timeout_seconds must be positive")
	}
	return nil
}
