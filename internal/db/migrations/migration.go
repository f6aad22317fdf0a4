package migrations

import (
	"weather-api/internal/models"

	"gorm.io/gorm"
)

type Migration struct {
	Name string
	Run  func(*gorm.DB) error
}

// Landmarks seeded into a fresh database. Names are matched case-insensitively during location resolution.
func SeedLandmarks() []models.Landmark {
	return []models.Landmark{
		{Name: "Statue of Liberty", Country: "United States", City: "New York City", Latitude: 40.6892, Longitude: -74.0445,
			Description: "Copper statue on Liberty Island in New York Harbor, dedicated in 1886."},
		{Name: "Eiffel Tower", Country: "France", City: "Paris", Latitude: 48.8584, Longitude: 2.2945,
			Description: "Wrought-iron lattice tower on the Champ de Mars, completed for the 1889 World's Fair."},
		{Name: "Taj Mahal", Country: "India", City: "Agra", Latitude: 27.1751, Longitude: 78.0421,
			Description: "White marble mausoleum on the bank of the Yamuna river."},
		{Name: "Sydney Opera House", Country: "Australia", City: "Sydney", Latitude: -33.8568, Longitude: 151.2153,
			Description: "Performing arts centre on Bennelong Point in Sydney Harbour."},
		{Name: "Big Ben", Country: "United Kingdom", City: "London", Latitude: 51.5007, Longitude: -0.1246,
			Description: "Great bell of the clock tower at the Palace of Westminster."},
		{Name: "Colosseum", Country: "Italy", City: "Rome", Latitude: 41.8902, Longitude: 12.4922,
			Description: "Oval amphitheatre in the centre of Rome, completed in 80 AD."},
		{Name: "Petra", Country: "Jordan", City: "Ma'an Governorate", Latitude: 30.3285, Longitude: 35.4444,
			Description: "Nabataean city carved into sandstone cliffs, reached through the Siq canyon."},
		{Name: "Machu Picchu", Country: "Peru", City: "Cusco Region", Latitude: -13.1631, Longitude: -72.545,
			Description: "15th-century Inca citadel above the Urubamba River valley."},
		{Name: "Great Wall of China", Country: "China", City: "Beijing", Latitude: 40.4319, Longitude: 116.5704,
			Description: "Series of fortifications across the historical northern borders of China."},
		{Name: "Christ the Redeemer", Country: "Brazil", City: "Rio de Janeiro", Latitude: -22.9519, Longitude: -43.2105,
			Description: "Art Deco statue of Jesus Christ on the summit of Corcovado."},
	}
}

func GetMigrations() []Migration {
	return []Migration{
		{
			Name: "CreateWeatherRecordsTable",
			Run: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.WeatherRecord{})
			},
		},
		{
			Name: "CreateLandmarksTableAndInsertData",
			Run: func(db *gorm.DB) error {
				if err := db.AutoMigrate(&models.Landmark{}); err != nil {
					return err
				}
				landmarks := SeedLandmarks()
				return db.CreateInBatches(landmarks, 100).Error
			},
		},
		{
			Name: "AddLowerNameIndexToLandmarks",
			Run: func(db *gorm.DB) error {
				return db.Exec("CREATE INDEX IF NOT EXISTS idx_landmarks_lower_name ON landmarks(LOWER(name))").Error
			},
		},
		{
			Name: "CreateRequestLogsTable",
			Run: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.RequestLog{})
			},
		},
		{
			Name: "CreateAuditLogsTable",
			Run: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.AuditLog{})
			},
		},
	}
}
