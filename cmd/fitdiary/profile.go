// ABOUTME: CLI commands for the user profile and goals.
// ABOUTME: Shows the profile and applies partial updates from flags.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	profileNickname string
	profileSex      string
	profileAge      int
	profileHeight   float64
	profileWeight   float64
	profileActivity string

	goalTargetWeight float64
	goalTargetDate   string
	goalWeekly       float64
	goalCalories     float64
	goalProtein      float64
	goalCarbs        float64
	goalFat          float64
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Show or update your profile and goals",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := trk.Profile(cmd.Context(), currentUser())
		if errors.Is(err, tracker.ErrNotFound) {
			fmt.Println("No profile yet. Create one with 'fitdiary profile set'.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Println(p.ID)
		if p.Nickname != "" {
			fmt.Printf("  Nickname:   %s\n", p.Nickname)
		}
		if p.Sex != "" {
			fmt.Printf("  Sex:        %s\n", p.Sex)
		}
		if p.Age > 0 {
			fmt.Printf("  Age:        %d\n", p.Age)
		}
		if p.HeightCm > 0 {
			fmt.Printf("  Height:     %.1f cm\n", p.HeightCm)
		}
		if p.InitialWeightKg > 0 {
			fmt.Printf("  Start:      %.1f kg\n", p.InitialWeightKg)
		}
		fmt.Printf("  Activity:   %s\n", p.ActivityLevel)

		g := p.Goals.WithDefaults()
		bold.Println("Goals")
		fmt.Printf("  Daily:      %.0f kcal  P %.0f  C %.0f  F %.0f\n",
			g.DailyCalorieTarget, g.TargetProtein, g.TargetCarbs, g.TargetFat)
		if g.TargetWeightKg > 0 {
			fmt.Printf("  Target:     %.1f kg\n", g.TargetWeightKg)
		}
		if g.TargetDate != nil {
			fmt.Printf("  By:         %s\n", g.TargetDate.Format("2006-01-02"))
		}
		if g.WeeklyGoalKg > 0 {
			fmt.Printf("  Weekly:     %.2f kg\n", g.WeeklyGoalKg)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile and goals",
	Long: `Update your profile. Only the flags you pass are changed; the profile is
created on first use. Pass --target-date "" to clear the target date.

EXAMPLES:

  fitdiary profile set --sex female --age 34 --height 170 --weight 72 --activity light
  fitdiary profile set --target-weight 66 --target-date 2025-09-01 --weekly 0.5
  fitdiary profile set --calories 1900 --protein 110

ACTIVITY LEVELS:

  sedentary, light, moderate, active, extra`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := buildProfileUpdate(cmd.Flags())
		if u.isEmpty() {
			return fmt.Errorf("nothing to update; see 'fitdiary profile set --help'")
		}

		p, err := trk.UpdateProfile(cmd.Context(), currentUser(), &u.ProfileUpdate)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		color.Green("✓ Updated profile %s", p.ID)
		return nil
	},
}

type profileFlags struct {
	tracker.ProfileUpdate
	changed int
}

func (p profileFlags) isEmpty() bool { return p.changed == 0 }

// buildProfileUpdate copies only the flags the user set into an update.
func buildProfileUpdate(flags *pflag.FlagSet) profileFlags {
	var u profileFlags
	var g tracker.GoalsUpdate
	goals := 0

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
			u.changed++
		}
	}
	setGoal := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
			goals++
		}
	}

	set("nickname", func() { u.Nickname = &profileNickname })
	set("sex", func() { u.Sex = &profileSex })
	set("age", func() { u.Age = &profileAge })
	set("height", func() { u.HeightCm = &profileHeight })
	set("weight", func() { u.InitialWeightKg = &profileWeight })
	set("activity", func() { u.ActivityLevel = &profileActivity })

	setGoal("target-weight", func() { g.TargetWeightKg = &goalTargetWeight })
	setGoal("target-date", func() { g.TargetDate = &goalTargetDate })
	setGoal("weekly", func() { g.WeeklyGoalKg = &goalWeekly })
	setGoal("calories", func() { g.DailyCalorieTarget = &goalCalories })
	setGoal("protein", func() { g.TargetProtein = &goalProtein })
	setGoal("carbs", func() { g.TargetCarbs = &goalCarbs })
	setGoal("fat", func() { g.TargetFat = &goalFat })

	if goals > 0 {
		u.Goals = &g
		u.changed += goals
	}
	return u
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileNickname, "nickname", "", "display name")
	f.StringVar(&profileSex, "sex", "", "male or female")
	f.IntVar(&profileAge, "age", 0, "age in years")
	f.Float64Var(&profileHeight, "height", 0, "height in cm")
	f.Float64Var(&profileWeight, "weight", 0, "starting weight in kg")
	f.StringVar(&profileActivity, "activity", "", "activity level")
	f.Float64Var(&goalTargetWeight, "target-weight", 0, "target weight in kg")
	f.StringVar(&goalTargetDate, "target-date", "", "target date (YYYY-MM-DD)")
	f.Float64Var(&goalWeekly, "weekly", 0, "weekly change goal in kg")
	f.Float64Var(&goalCalories, "calories", 0, "daily calorie target")
	f.Float64Var(&goalProtein, "protein", 0, "daily protein target (g)")
	f.Float64Var(&goalCarbs, "carbs", 0, "daily carbohydrate target (g)")
	f.Float64Var(&goalFat, "fat", 0, "daily fat target (g)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
