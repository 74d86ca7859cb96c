package excel

import (
	"reddlag/domain/series"
	"reddlag/internal/errors"
)

// WorkbookSource implements ports.ReddSource over the survey workbook
type WorkbookSource struct {
	reader *DataReader
	cfg    SourceConfig
}

// NewWorkbookSource creates a redd survey source for one workbook
func NewWorkbookSource(path string, cfg SourceConfig) *WorkbookSource {
	return &WorkbookSource{reader: NewDataReader(path), cfg: cfg}
}

// LoadReddCounts loads and parses the wide redd-count sheet
func (s *WorkbookSource) LoadReddCounts() (*series.WideReddTable, error) {
	table, err := s.reader.ReadTable(s.cfg.ReddSheet)
	if err != nil {
		return nil, errors.SourceUnreadable(s.reader.filePath, err)
	}
	return ParseWideReddTable(table, s.cfg)
}

// LoadExclusions loads and parses the known-bad observation sheet
func (s *WorkbookSource) LoadExclusions() ([]series.Exclusion, error) {
	table, err := s.reader.ReadTable(s.cfg.ExclusionSheet)
	if err != nil {
		return nil, errors.SourceUnreadable(s.reader.filePath, err)
	}
	return ParseExclusions(table, s.cfg)
}

// ReservoirSeriesSource implements ports.ReservoirSource over a
// delimited pool volume export
type ReservoirSeriesSource struct {
	reader *DataReader
	cfg    SourceConfig
}

// NewReservoirSeriesSource creates a reservoir series source
func NewReservoirSeriesSource(path string, cfg SourceConfig) *ReservoirSeriesSource {
	return &ReservoirSeriesSource{reader: NewDataReader(path), cfg: cfg}
}

// LoadPoolReadings loads and parses the pool volume time series
func (s *ReservoirSeriesSource) LoadPoolReadings() ([]series.PoolReading, error) {
	table, err := s.reader.ReadTable("")
	if err != nil {
		return nil, errors.SourceUnreadable(s.reader.filePath, err)
	}
	return ParseReservoirSeries(table, s.cfg)
}

// SnowpackSeriesSource implements ports.SnowpackSource over a
// delimited annual SWE file
type SnowpackSeriesSource struct {
	reader *DataReader
	cfg    SourceConfig
}

// NewSnowpackSeriesSource creates a snowpack series source
func NewSnowpackSeriesSource(path string, cfg SourceConfig) *SnowpackSeriesSource {
	return &SnowpackSeriesSource{reader: NewDataReader(path), cfg: cfg}
}

// LoadSnowpack loads and parses the annual April 1 SWE series
func (s *SnowpackSeriesSource) LoadSnowpack() ([]series.AnnualValue, error) {
	table, err := s.reader.ReadTable("")
	if err != nil {
		return nil, errors.SourceUnreadable(s.reader.filePath, err)
	}
	return ParseSnowpackSeries(table, s.cfg)
}
