package excel

// SourceConfig names the sheets and columns the survey workbook and the
// delimited covariate files are expected to carry.
type SourceConfig struct {
	ReddSheet      string `json:"redd_sheet"`
	ExclusionSheet string `json:"exclusion_sheet"`

	LocalPopulationColumn string `json:"local_population_column"`
	SubPopulationColumn   string `json:"sub_population_column"`
	ComplexColumn         string `json:"complex_column"`
	LifeHistoryColumn     string `json:"life_history_column"`
	YearColumn            string `json:"year_column"`

	TimestampColumn  string `json:"timestamp_column"`
	PoolVolumeColumn string `json:"pool_volume_column"`
	WaterYearColumn  string `json:"water_year_column"`
	SWEColumn        string `json:"swe_column"`
}

// DefaultSourceConfig returns the column layout of the survey workbook
// as published
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		ReddSheet:             "ReddCounts",
		ExclusionSheet:        "Exclusions",
		LocalPopulationColumn: "local_population",
		SubPopulationColumn:   "sub_population",
		ComplexColumn:         "population_complex",
		LifeHistoryColumn:     "life_history",
		YearColumn:            "year",
		TimestampColumn:       "date",
		PoolVolumeColumn:      "pool_volume_af",
		WaterYearColumn:       "water_year",
		SWEColumn:             "swe_apr",
	}
}
