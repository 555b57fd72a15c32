package config

import (
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/snapshot"
)

// GalleryConfig defines where snapshots live and how they are paged
type GalleryConfig struct {
	SnapshotDir       string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty" validate:"required"`
	ImageExtension    string `json:"image_extension,omitempty" yaml:"image_extension,omitempty" validate:"required,startswith=."`
	PageSize          int    `json:"page_size,omitempty" yaml:"page_size,omitempty" validate:"min=1"`
	RowWidth          int    `json:"row_width,omitempty" yaml:"row_width,omitempty" validate:"min=1"`
	TimeResolutions   []int  `json:"time_resolutions,omitempty" yaml:"time_resolutions,omitempty" validate:"required,min=1,dive,min=1"`
	DefaultResolution int    `json:"default_resolution,omitempty" yaml:"default_resolution,omitempty" validate:"min=1"`
	CaptureStart      string `json:"capture_start,omitempty" yaml:"capture_start,omitempty" validate:"required,timeofday"`
	CaptureEnd        string `json:"capture_end,omitempty" yaml:"capture_end,omitempty" validate:"required,timeofday"`
	// TimeZone is the IANA zone snapshot names are written in. Empty means the host zone.
	TimeZone string `json:"time_zone,omitempty" yaml:"time_zone,omitempty" validate:"omitempty,timezone"`
	// FixedNow pins "now" (layout 2006-01-02T15:04) for demo data sets.
	FixedNow       string `json:"fixed_now,omitempty" yaml:"fixed_now,omitempty" validate:"omitempty,fixednow"`
	WatchDirectory bool   `json:"watch_directory" yaml:"watch_directory"`
}

// NewDefaultGalleryConfig creates default gallery configuration
func NewDefaultGalleryConfig() GalleryConfig {
	return GalleryConfig{
		SnapshotDir:       DefaultSnapshotDir,
		ImageExtension:    DefaultImageExtension,
		PageSize:          DefaultPageSize,
		RowWidth:          DefaultRowWidth,
		TimeResolutions:   DefaultTimeResolutions(),
		DefaultResolution: DefaultResolution,
		CaptureStart:      DefaultCaptureStart,
		CaptureEnd:        DefaultCaptureEnd,
		WatchDirectory:    DefaultWatchDirectory,
	}
}

// Window parses the capture window.
func (c GalleryConfig) Window() (snapshot.Window, error) {
	start, err := snapshot.ParseTimeOfDay(c.CaptureStart)
	if err != nil {
		return snapshot.Window{}, common.NewConfigurationError("gallery_config", "capture_start", err.Error())
	}
	end, err := snapshot.ParseTimeOfDay(c.CaptureEnd)
	if err != nil {
		return snapshot.Window{}, common.NewConfigurationError("gallery_config", "capture_end", err.Error())
	}
	return snapshot.NewWindow(start, end)
}

// Location returns the configured zone, time.Local when unset.
func (c GalleryConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, common.NewConfigurationError("gallery_config", "time_zone", err.Error())
	}
	return loc, nil
}

// FixedNowTime parses FixedNow in loc. ok is false when FixedNow is unset.
func (c GalleryConfig) FixedNowTime(loc *time.Location) (t time.Time, ok bool, err error) {
	if c.FixedNow == "" {
		return time.Time{}, false, nil
	}
	t, err = time.ParseInLocation(FixedNowLayout, c.FixedNow, loc)
	if err != nil {
		return time.Time{}, false, common.NewConfigurationError("gallery_config", "fixed_now", err.Error())
	}
	return t, true, nil
}
