package models

type RecordStats struct {
	TotalRecords      int64            `json:"totalRecords"`
	RecordsByLocation map[string]int64 `json:"recordsByLocation"`
	RecentlyAdded     []WeatherRecord  `json:"recentlyAdded"`
}
