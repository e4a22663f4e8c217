package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/run-planner/run-planner-app/internal/library"
	"github.com/lowaak/run-planner/run-planner-app/internal/planner"
	"github.com/lowaak/run-planner/run-planner-app/internal/wahoo"
)

var (
	flagLogin     = pflag.Bool("login", false, "print the Wahoo authorization URL")
	flagCode      = pflag.String("code", "", "exchange an authorization code for tokens")
	flagLogout    = pflag.Bool("logout", false, "discard cached Wahoo tokens")
	flagList      = pflag.Bool("list", false, "list builtin and saved workouts")
	flagBuiltin   = pflag.String("builtin", "", "build a plan from a builtin workout by name")
	flagWorkout   = pflag.String("workout", "", "build a plan from a workout document file")
	flagLoad      = pflag.String("load", "", "build a plan from a saved library workout by name")
	flagName      = pflag.String("name", "", "override the plan name")
	flagThreshold = pflag.String("threshold", "", "threshold pace as min:sec per mile (e.g. 8:39)")
	flagSave      = pflag.Bool("save", false, "save the built plan to the workout library")
	flagUpload    = pflag.Bool("upload", false, "upload the built plan and schedule it for today")
)

func main() {
	pflag.Parse()

	dataDir := defaultDataDir()
	loadConfig(dataDir)
	if dir := viper.GetString("data_dir"); dir != "" {
		dataDir = dir
	}

	logger := log.New(&lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "run-planner.log"),
		MaxSize:    5, // MB
		MaxBackups: 3,
	}, "", log.LstdFlags)
	logger.Printf("run-planner starting, data dir %s", dataDir)

	client := wahoo.NewClient(wahoo.Config{
		ClientID:     viper.GetString("wahoo.client_id"),
		ClientSecret: viper.GetString("wahoo.client_secret"),
		RedirectURI:  viper.GetString("wahoo.redirect_uri"),
		BaseURL:      viper.GetString("wahoo.base_url"),
	}, logger)
	tokenCache := wahoo.NewTokenCache(filepath.Join(dataDir, "token.json"), logger)
	lib := library.NewLibrary(filepath.Join(dataDir, "workouts"), logger)
	session := planner.NewSession(logger)

	unsubscribe := session.SubscribeToPlanChanges(func(s planner.PlanSummary) {
		fmt.Printf("Plan %q: %d blocks, %d intervals, %d min total\n",
			s.Name, s.BlockCount, s.IntervalCount, s.TotalDurationSeconds/60)
	})
	defer unsubscribe()

	ctx := context.Background()

	switch {
	case *flagLogin:
		fmt.Println("Open this URL, authorize, then run again with -code <code>:")
		fmt.Println(client.AuthURL())
		return
	case *flagCode != "":
		token, err := client.ExchangeCode(ctx, *flagCode)
		if err != nil {
			fatalf(logger, "authorization failed: %v", err)
		}
		if err := tokenCache.Save(token); err != nil {
			fatalf(logger, "saving token: %v", err)
		}
		fmt.Println("Connected to Wahoo.")
		return
	case *flagLogout:
		if err := tokenCache.Clear(); err != nil {
			fatalf(logger, "logout: %v", err)
		}
		fmt.Println("Logged out.")
		return
	case *flagList:
		listWorkouts(lib, logger)
		return
	}

	threshold := resolveThreshold(logger)

	switch {
	case *flagBuiltin != "":
		tmpl, ok := planner.GetWorkoutTemplateByName(*flagBuiltin)
		if !ok {
			fatalf(logger, "no builtin workout named %q (try -list)", *flagBuiltin)
		}
		plan, err := tmpl.Instantiate(threshold)
		if err != nil {
			fatalf(logger, "building %q: %v", *flagBuiltin, err)
		}
		mustLoad(session, plan, logger)
	case *flagWorkout != "":
		raw, err := os.ReadFile(*flagWorkout)
		if err != nil {
			fatalf(logger, "reading workout file: %v", err)
		}
		plan, err := library.PlanFromJSON(raw)
		if err != nil {
			fatalf(logger, "parsing workout file: %v", err)
		}
		mustLoad(session, plan, logger)
	case *flagLoad != "":
		plan, err := lib.Load(*flagLoad)
		if err != nil {
			fatalf(logger, "loading %q from library: %v", *flagLoad, err)
		}
		mustLoad(session, plan, logger)
	default:
		pflag.Usage()
		return
	}

	if *flagName != "" {
		plan := session.Plan()
		plan.Name = *flagName
		mustLoad(session, plan, logger)
	}

	renderPlan(session.Plan())

	if *flagSave {
		if err := lib.Save(session.Plan()); err != nil {
			fatalf(logger, "saving to library: %v", err)
		}
		fmt.Println("Saved to library.")
	}

	if *flagUpload {
		uploadAndSchedule(ctx, session, client, tokenCache, logger)
	}
}

// loadConfig wires viper: optional config file in the data dir plus
// RUN_PLANNER_* environment variables.
func loadConfig(dataDir string) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dataDir)
	viper.SetEnvPrefix("RUN_PLANNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("athlete.threshold_pace", "8:00")
	_ = viper.ReadInConfig() // missing config file is fine, env can carry everything
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".run-planner")
}

// resolveThreshold picks the threshold pace from the -threshold flag or the
// configured default and converts it to m/s.
func resolveThreshold(logger *log.Logger) float64 {
	pace := *flagThreshold
	if pace == "" {
		pace = viper.GetString("athlete.threshold_pace")
	}
	minutes, seconds, err := parsePace(pace)
	if err != nil {
		fatalf(logger, "threshold pace %q: %v", pace, err)
	}
	speed, err := planner.PaceToSpeed(minutes, seconds)
	if err != nil {
		fatalf(logger, "threshold pace %q: %v", pace, err)
	}
	return speed
}

// parsePace parses "min:sec" (e.g. "8:39").
func parsePace(s string) (minutes, seconds int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want min:sec")
	}
	minutes, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("minutes: %v", err)
	}
	seconds, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("seconds: %v", err)
	}
	return minutes, seconds, nil
}

func mustLoad(session *planner.Session, plan *planner.Plan, logger *log.Logger) {
	if err := session.LoadPlan(plan); err != nil {
		fatalf(logger, "loading plan: %v", err)
	}
}

func listWorkouts(lib *library.Library, logger *log.Logger) {
	fmt.Println("Builtin workouts:")
	for _, t := range planner.AllWorkoutTemplates {
		fmt.Printf("  %s\n", t.Name)
	}
	docs, err := lib.List()
	if err != nil {
		fatalf(logger, "listing library: %v", err)
	}
	if len(docs) == 0 {
		return
	}
	fmt.Println("Library workouts:")
	for _, d := range docs {
		fmt.Printf("  %s (threshold %d:%02d, saved %s)\n",
			d.Name, d.ThresholdMinutes, d.ThresholdSeconds, d.SavedAt.Format("2006-01-02"))
	}
}

// renderPlan prints the flattened plan with a display pace per interval.
func renderPlan(plan *planner.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tINTERVAL\tDURATION\tTARGET\tPACE")
	for i, iv := range plan.Flatten() {
		pace := "-"
		if minutes, seconds, err := planner.SpeedToPace(plan.ThresholdSpeedMps, iv.Target.CenterFraction); err == nil {
			pace = planner.FormatPace(minutes, seconds)
		}
		fmt.Fprintf(w, "%d\t%s\t%ds\t%s\t%s\n", i+1, iv.Name, iv.DurationSeconds, iv.Target.Label, pace)
	}
	w.Flush()
}

// uploadAndSchedule pushes the plan document to the Wahoo cloud and schedules
// it for today, refreshing the cached token if it has gone stale.
func uploadAndSchedule(ctx context.Context, session *planner.Session, client *wahoo.Client, tokenCache *wahoo.TokenCache, logger *log.Logger) {
	token, ok := tokenCache.Load()
	if !ok {
		fatalf(logger, "not connected to Wahoo - run with -login first")
	}

	// A locally-expired token skips the round trip; an unexpired one still
	// gets verified against the API before uploading.
	valid := token.Valid(time.Now())
	if valid {
		live, err := client.CheckToken(ctx, token.AccessToken)
		if err != nil {
			fatalf(logger, "checking token: %v", err)
		}
		valid = live
	}
	if !valid {
		if token.RefreshToken == "" {
			fatalf(logger, "Wahoo session expired - run with -login again")
		}
		refreshed, err := client.Refresh(ctx, token.RefreshToken)
		if err != nil {
			fatalf(logger, "refreshing token: %v", err)
		}
		token = refreshed
		if err := tokenCache.Save(token); err != nil {
			fatalf(logger, "saving refreshed token: %v", err)
		}
	}
	session.SetAccessToken(token.AccessToken)

	doc, err := session.Document()
	if err != nil {
		fatalf(logger, "serializing plan: %v", err)
	}
	planID, err := client.UploadPlan(ctx, session.AccessToken(), doc)
	if err != nil {
		fatalf(logger, "uploading plan: %v", err)
	}
	workoutID, err := client.ScheduleWorkout(ctx, session.AccessToken(), planID, doc.Header.Name, session.TotalDurationSeconds())
	if err != nil {
		fatalf(logger, "scheduling workout: %v", err)
	}
	fmt.Printf("Workout scheduled (plan %d, workout %d). Check your Wahoo app.\n", planID, workoutID)
}

func fatalf(logger *log.Logger, format string, args ...interface{}) {
	logger.Printf("FATAL: "+format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
