package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users, profiles and jobs
var (
	TestAdminUser m.User
	TestNurse1    m.User
	TestNurse2    m.User
	TestProfile1  m.NurseProfile
	TestProfile2  m.NurseProfile

	// Shared plain password for all seeded users
	TestSeedPassword = "SeedPass123!"

	TestJobActive1 m.Job
	TestJobActive2 m.Job
	TestJobDraft   m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample nurses, an admin, shared skills and job postings.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{ID: uuid.New(), Name: "Site Admin", Email: "admin@example.com", Password: hashedPwd, Role: m.RoleAdmin},
		{ID: uuid.New(), Name: "Alice Tan", Email: "alice@example.com", Password: hashedPwd, Role: m.RoleUser},
		{ID: uuid.New(), Name: "Ben Ong", Email: "ben@example.com", Password: hashedPwd, Role: m.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestAdminUser, TestNurse1, TestNurse2 = users[0], users[1], users[2]

	skills := []m.Skill{
		{Name: "Critical Care"},
		{Name: "IV Therapy"},
		{Name: "Patient Assessment"},
		{Name: "Wound Care"},
	}
	if err := db.Create(&skills).Error; err != nil {
		return err
	}

	profiles := []m.NurseProfile{
		{
			UserID: TestNurse1.ID,
			EditableNurseInfo: m.EditableNurseInfo{
				Specialization:  "ICU",
				YearsExperience: 5,
				Certifications:  pq.StringArray{"ACLS", "BLS"},
				PreferredShifts: pq.StringArray{"Night"},
				PriorFacilities: pq.StringArray{"Sunrise General"},
			},
			Skills: []m.Skill{skills[0], skills[1]},
		},
		{
			UserID: TestNurse2.ID,
			EditableNurseInfo: m.EditableNurseInfo{
				Specialization:  "Emergency",
				YearsExperience: 2,
				Certifications:  pq.StringArray{"BLS"},
				PreferredShifts: pq.StringArray{"Day", "Evening"},
				PriorFacilities: pq.StringArray{},
			},
			Skills: []m.Skill{skills[2], skills[3]},
		},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}
	TestProfile1, TestProfile2 = profiles[0], profiles[1]

	jobs := []m.Job{
		{
			PostedByID: TestAdminUser.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:      "ICU Registered Nurse",
				Desc:       "Night coverage for the intensive care unit.",
				Facility:   "Sunrise General",
				Department: "ICU",
				ShiftType:  "Night",
				PayRate:    "45 SGD/hr",
				Status:     m.JobStatusActive,
			},
			RequiredSkills: []m.Skill{skills[0], skills[1]},
			Shifts: []m.Shift{
				{Date: time.Now().AddDate(0, 0, 7), StartTime: "19:00", EndTime: "07:00"},
			},
		},
		{
			PostedByID: TestAdminUser.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:      "ER Staff Nurse",
				Desc:       "Emergency department day shifts.",
				Facility:   "Harbourview Medical",
				Department: "Emergency",
				ShiftType:  "Day",
				PayRate:    "38 SGD/hr",
				Status:     m.JobStatusActive,
			},
			RequiredSkills: []m.Skill{skills[2]},
		},
		{
			PostedByID: TestAdminUser.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:      "Geriatric Ward Nurse",
				Desc:       "Draft posting, not yet published.",
				Facility:   "Harbourview Medical",
				Department: "Geriatrics",
				ShiftType:  "Day",
				PayRate:    "35 SGD/hr",
				Status:     m.JobStatusDraft,
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJobActive1, TestJobActive2, TestJobDraft = jobs[0], jobs[1], jobs[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"admin@example.com", "alice@example.com", "ben@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "admin@example.com":
			TestAdminUser = u
		case "alice@example.com":
			TestNurse1 = u
		case "ben@example.com":
			TestNurse2 = u
		}
	}

	_ = db.Preload("Skills").First(&TestProfile1, "user_id = ?", TestNurse1.ID).Error
	_ = db.Preload("Skills").First(&TestProfile2, "user_id = ?", TestNurse2.ID).Error

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJobActive1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJobActive2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJobDraft = jobs[2]
		}
	}

	return nil
}
