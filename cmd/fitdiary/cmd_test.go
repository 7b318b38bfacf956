// ABOUTME: Tests for the fitdiary CLI.
// ABOUTME: Covers helpers, command wiring and end-to-end runs against a temp SQLite store.
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/fitdiary/internal/config"
	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testUser = "tester"

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		want    time.Time
	}{
		{"2025-03-10 07:30", false, time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)},
		{"2025-03-10T07:30", false, time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)},
		{"2025-03-10", false, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)},
		{"2025-03-10T07:30:00Z", false, time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)},
		{"10/03/2025", true, time.Time{}},
		{"", true, time.Time{}},
		{"yesterday", true, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTime(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveDay(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "2025-03-01", false},
		{"today", "2025-03-01", false},
		{"Yesterday", "2025-02-28", false},
		{"2024-12-31", "2024-12-31", false},
		{"2025-02-30", "", true},
		{"last week", "", true},
	}
	for _, tt := range tests {
		got, err := resolveDay(tt.input, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveDay(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveDay(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseFoodRef(t *testing.T) {
	ref, err := parseFoodRef("chicken breast:150")
	if err != nil {
		t.Fatalf("parseFoodRef failed: %v", err)
	}
	if ref.Name != "chicken breast" || ref.Grams != 150 {
		t.Errorf("ref = %+v", ref)
	}

	for _, bad := range []string{"banana", ":100", "banana:", "banana:abc", "banana:-5", "banana:0"} {
		if _, err := parseFoodRef(bad); err == nil {
			t.Errorf("parseFoodRef(%q) should fail", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long note", 10, "this is..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"lunch", 8, "lunch   "},
		{"breakfast", 5, "breakfast"},
		{"", 3, "   "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	for _, name := range []string{"user", "backend", "data-dir", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string][]string{
		"meal":      {"add", "rm", "show", "list"},
		"exercise":  {"add", "rm", "show", "list"},
		"profile":   {"show", "set"},
		"weight":    {"add", "list"},
		"food":      {"lookup", "search"},
		"sync":      {"link", "unlink", "status", "now", "repair", "reset", "wipe"},
		"dashboard": nil,
		"summary":   nil,
		"chat":      nil,
		"mcp":       nil,
		"serve":     nil,
		"export":    nil,
		"import":    nil,
		"migrate":   nil,
	}

	for name, subs := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		for _, sub := range subs {
			c, _, err := rootCmd.Find([]string{name, sub})
			if err != nil || c.Name() != sub {
				t.Errorf("subcommand %q %q not registered", name, sub)
			}
		}
	}
}

func TestCommandAliases(t *testing.T) {
	aliases := map[string]string{
		"m":       "meal",
		"diet":    "meal",
		"ex":      "exercise",
		"workout": "exercise",
		"w":       "weight",
		"dash":    "dashboard",
		"today":   "dashboard",
	}
	for alias, want := range aliases {
		cmd, _, err := rootCmd.Find([]string{alias})
		if err != nil || cmd.Name() != want {
			t.Errorf("alias %q should resolve to %q", alias, want)
		}
	}
}

func TestSyncCommandsSkipStorage(t *testing.T) {
	for _, c := range []*cobra.Command{syncLinkCmd, syncUnlinkCmd, syncRepairCmd, syncResetCmd, syncWipeCmd} {
		if c.Annotations[skipStorage] == "" {
			t.Errorf("sync %s should not open storage", c.Name())
		}
	}
	if syncStatusCmd.Annotations[skipStorage] != "" {
		t.Error("sync status needs the open store")
	}
}

// resetFlags returns every flag under cmd to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupTestCLI points config and data at temp dirs and returns the data dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{config.EnvBackend, config.EnvPostgresURL, config.EnvLogLevel, config.EnvHTTPAddr} {
		t.Setenv(env, "")
	}
	dataDir := t.TempDir()
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvUser, testUser)

	if err := (&config.Config{FoodAPIURL: config.FoodAPIOff, LogLevel: "error"}).Save(); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	resetFlags(rootCmd)
	t.Cleanup(func() {
		_ = closeApp()
		resetFlags(rootCmd)
	})
	return dataDir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustExecute(t *testing.T, args ...string) {
	t.Helper()
	if err := execute(t, args...); err != nil {
		t.Fatalf("fitdiary %v failed: %v", args, err)
	}
}

// openStore opens the SQLite store a command wrote to.
func openStore(t *testing.T, dataDir string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "fitdiary.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMealAddAndRemove(t *testing.T) {
	dataDir := setupTestCLI(t)
	today := models.FormatDate(time.Now())

	mustExecute(t, "meal", "add", "lunch", "--food", "chicken breast:150", "--food", "white rice:200", "--notes", "meal prep")

	db := openStore(t, dataDir)
	ctx := context.Background()
	day, err := db.GetDietDay(ctx, testUser, today)
	if err != nil {
		t.Fatalf("GetDietDay failed: %v", err)
	}
	if len(day.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(day.Meals))
	}
	meal := day.Meals[0]
	if meal.MealType != models.MealLunch || len(meal.Foods) != 2 || meal.Notes != "meal prep" {
		t.Errorf("meal = %+v", meal)
	}
	if meal.Calories <= 0 || day.TotalCalories != meal.Calories {
		t.Errorf("calories: meal %v, day %v", meal.Calories, day.TotalCalories)
	}
	db.Close()

	mustExecute(t, "meal", "rm", meal.ID.String()[:8])

	db = openStore(t, dataDir)
	day, err = db.GetDietDay(ctx, testUser, today)
	if err != nil {
		t.Fatalf("GetDietDay failed: %v", err)
	}
	if len(day.Meals) != 0 || day.TotalCalories != 0 {
		t.Errorf("meal not removed: %+v", day)
	}
}

func TestMealAddWithMacrosOnDate(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustExecute(t, "meal", "add", "dinner", "--name", "Burrito bowl",
		"--calories", "650", "--protein", "35", "--carbs", "70", "--fat", "20",
		"--date", "2025-03-09", "--at", "2025-03-09 19:30")
	mustExecute(t, "meal", "show", "2025-03-09")
	mustExecute(t, "meal", "list", "--from", "2025-03-01")

	db := openStore(t, dataDir)
	day, err := db.GetDietDay(context.Background(), testUser, "2025-03-09")
	if err != nil {
		t.Fatalf("GetDietDay failed: %v", err)
	}
	m := day.Meals[0]
	if m.MealName != "Burrito bowl" || m.Calories != 650 || m.Protein != 35 {
		t.Errorf("meal = %+v", m)
	}
	if m.Timestamp.Hour() != 19 || m.Timestamp.Minute() != 30 {
		t.Errorf("timestamp = %v", m.Timestamp)
	}
}

func TestMealAddInvalidInput(t *testing.T) {
	setupTestCLI(t)

	tests := [][]string{
		{"meal", "add", "brunch", "--calories", "300"},
		{"meal", "add", "lunch", "--food", "banana"},
		{"meal", "add", "lunch", "--calories", "300", "--date", "2025-13-01"},
		{"meal", "add", "lunch", "--calories", "300", "--at", "noon"},
		{"meal", "add", "lunch", "--food", "dragonfruit jam:100"},
		{"meal", "rm", "ffffffff"},
	}
	for _, args := range tests {
		if err := execute(t, args...); err == nil {
			t.Errorf("fitdiary %v should fail", args)
		}
	}
}

func TestExerciseAddEstimatesCalories(t *testing.T) {
	dataDir := setupTestCLI(t)
	today := models.FormatDate(time.Now())

	mustExecute(t, "exercise", "add", "running", "--duration", "30")
	mustExecute(t, "exercise", "add", "walking", "-m", "40", "--steps", "5200", "--distance", "4.2", "--calories", "150")
	mustExecute(t, "exercise", "show")
	mustExecute(t, "exercise", "list")

	db := openStore(t, dataDir)
	day, err := db.GetExerciseDay(context.Background(), testUser, today)
	if err != nil {
		t.Fatalf("GetExerciseDay failed: %v", err)
	}
	if len(day.Exercises) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(day.Exercises))
	}
	if day.Exercises[0].CaloriesBurned != 294 {
		t.Errorf("estimated calories = %v, want 294", day.Exercises[0].CaloriesBurned)
	}
	if day.TotalDuration != 70 || day.TotalSteps != 5200 || day.TotalCaloriesBurned != 444 {
		t.Errorf("day totals = %d min, %d steps, %v kcal", day.TotalDuration, day.TotalSteps, day.TotalCaloriesBurned)
	}
	db.Close()

	mustExecute(t, "exercise", "rm", day.Exercises[1].ID.String()[:8])
	if err := execute(t, "exercise", "add", "running", "-m", "10", "--intensity", "extreme"); err == nil {
		t.Error("unknown intensity should fail")
	}
	if err := execute(t, "exercise", "add", "running", "--start", "07:00"); err == nil {
		t.Error("unparseable start time should fail")
	}
}

func TestExerciseFromStartAndEnd(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustExecute(t, "exercise", "add", "cycling", "--date", "2025-03-10",
		"--start", "2025-03-10 07:00", "--end", "2025-03-10 07:45", "--calories", "300")

	db := openStore(t, dataDir)
	day, err := db.GetExerciseDay(context.Background(), testUser, "2025-03-10")
	if err != nil {
		t.Fatalf("GetExerciseDay failed: %v", err)
	}
	if day.Exercises[0].Duration != 45 {
		t.Errorf("duration = %d, want 45", day.Exercises[0].Duration)
	}
}

func TestProfileWeightAndDashboard(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustExecute(t, "profile", "show")
	mustExecute(t, "profile", "set", "--sex", "male", "--age", "30", "--height", "180",
		"--weight", "85", "--activity", "moderate", "--target-weight", "75", "--calories", "2000")
	mustExecute(t, "weight", "add", "80", "--body-fat", "21.5")
	mustExecute(t, "weight", "list")
	mustExecute(t, "profile", "show")
	mustExecute(t, "dashboard")
	mustExecute(t, "summary", "month")

	db := openStore(t, dataDir)
	ctx := context.Background()
	p, err := db.GetProfile(ctx, testUser)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Age != 30 || p.HeightCm != 180 || p.ActivityLevel != models.ActivityModerate {
		t.Errorf("profile = %+v", p)
	}
	if p.Goals.TargetWeightKg != 75 || p.Goals.DailyCalorieTarget != 2000 {
		t.Errorf("goals = %+v", p.Goals)
	}

	s, err := db.LatestHealthSample(ctx, testUser)
	if err != nil {
		t.Fatalf("LatestHealthSample failed: %v", err)
	}
	if s.WeightKg != 80 || s.BMI != 24.7 || s.BodyFat == nil || *s.BodyFat != 21.5 {
		t.Errorf("sample = %+v", s)
	}
}

func TestProfileSetRequiresChanges(t *testing.T) {
	setupTestCLI(t)

	if err := execute(t, "profile", "set"); err == nil {
		t.Error("profile set without flags should fail")
	}
	if err := execute(t, "profile", "set", "--activity", "couch"); err == nil {
		t.Error("unknown activity level should fail")
	}
	if err := execute(t, "weight", "add", "heavy"); err == nil {
		t.Error("non-numeric weight should fail")
	}
	if err := execute(t, "summary", "year"); err == nil {
		t.Error("unknown period should fail")
	}
}

func TestFoodAndChat(t *testing.T) {
	setupTestCLI(t)

	mustExecute(t, "food", "lookup", "chicken", "breast", "--grams", "150")
	mustExecute(t, "food", "search", "rice")
	mustExecute(t, "chat", "any", "workout", "tips?")

	err := execute(t, "food", "lookup", "dragonfruit", "jam")
	if !errors.Is(err, food.ErrUnknownFood) {
		t.Errorf("unknown food err = %v, want ErrUnknownFood", err)
	}
}

func TestExportAndImport(t *testing.T) {
	setupTestCLI(t)

	mustExecute(t, "meal", "add", "breakfast", "--food", "oats:60", "--date", "2025-03-08")
	mustExecute(t, "weight", "add", "72.5", "--date", "2025-03-08")

	jsonFile := filepath.Join(t.TempDir(), "backup.json")
	yamlFile := filepath.Join(t.TempDir(), "backup.yml")
	mustExecute(t, "export", "json", "-o", jsonFile)
	mustExecute(t, "export", "yaml", "--all-users", "-o", yamlFile)
	for _, f := range []string{jsonFile, yamlFile} {
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("export file missing: %v", err)
		}
	}
	if err := execute(t, "export", "markdown"); err == nil {
		t.Error("unknown export format should fail")
	}

	for _, f := range []string{jsonFile, yamlFile} {
		dataDir := t.TempDir()
		t.Setenv(config.EnvDataDir, dataDir)
		mustExecute(t, "import", f)

		db := openStore(t, dataDir)
		day, err := db.GetDietDay(context.Background(), testUser, "2025-03-08")
		if err != nil {
			t.Fatalf("%s: GetDietDay failed: %v", f, err)
		}
		if len(day.Meals) != 1 || day.Meals[0].Foods[0].Name != "oats" {
			t.Errorf("%s: day = %+v", f, day)
		}
		db.Close()

		if err := execute(t, "import", f); err == nil {
			t.Errorf("%s: importing the same days twice should fail", f)
		}
	}
}

func TestMigrateToSQLite(t *testing.T) {
	setupTestCLI(t)

	mustExecute(t, "meal", "add", "snack", "--food", "apple:150", "--date", "2025-03-07")
	mustExecute(t, "exercise", "add", "yoga", "-m", "30", "--date", "2025-03-07")
	mustExecute(t, "migrate", "--to", "sqlite", "--dry-run")

	dst := filepath.Join(t.TempDir(), "copy")
	mustExecute(t, "migrate", "--to", "sqlite", "--to-dir", dst)

	db := openStore(t, dst)
	ctx := context.Background()
	diet, err := db.ListDietDays(ctx, testUser, storage.DayRange{})
	if err != nil {
		t.Fatalf("ListDietDays failed: %v", err)
	}
	exercise, err := db.ListExerciseDays(ctx, testUser, storage.DayRange{})
	if err != nil {
		t.Fatalf("ListExerciseDays failed: %v", err)
	}
	if len(diet) != 1 || len(exercise) != 1 {
		t.Errorf("migrated %d diet days and %d exercise days, want 1 and 1", len(diet), len(exercise))
	}
	db.Close()

	if err := execute(t, "migrate", "--to", "sqlite", "--to-dir", dst); err == nil {
		t.Error("migrating into a non-empty directory should fail without --force")
	}
	if err := execute(t, "migrate", "--to", "sqlite"); err == nil {
		t.Error("migrating onto the source store should fail")
	}
	if err := execute(t, "migrate"); err == nil {
		t.Error("migrate without --to should fail")
	}
}

func TestSyncStatusWithoutCharm(t *testing.T) {
	setupTestCLI(t)

	mustExecute(t, "sync", "status")
	if err := execute(t, "sync", "now"); err == nil {
		t.Error("sync now on sqlite should fail")
	}
}
