package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/catalog"
	"github.com/spigell/career-compass/internal/history"
	"github.com/spigell/career-compass/internal/jobs"
	"github.com/spigell/career-compass/internal/profile"
)

const (
	PromptMentors     = "Show mentors"
	PromptRoadmap     = "Show roadmap"
	PromptAlternative = "Switch to another recommendation"
	PromptJobs        = "Search jobs"
	PromptAsk         = "Ask assistant"
	PromptExit        = "Exit"
	PromptBack        = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptMentors, PromptRoadmap, PromptAlternative, PromptJobs, PromptAsk, PromptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a career for a profile file",
	Run: func(cmd *cobra.Command, _ []string) {
		recommendRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("profile", "p", "", "profile file in yaml or json format, '-' reads json from stdin")
	recommendCmd.Flags().BoolP("interactive", "i", false, "explore mentors, roadmap, jobs and the assistant after the recommendation")
	recommendCmd.MarkFlagRequired("profile")
}

// session is the state of an interactive recommendation.
type session struct {
	ctx            context.Context
	config         *Config
	logger         *zap.Logger
	catalog        *catalog.Catalog
	recommendation *catalog.Recommendation
	career         string
	jobs           *jobs.Jobs
	out            io.Writer
}

func recommendRun(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := bootstrap()

	path, _ := cmd.Flags().GetString("profile")
	p, err := readProfile(path, cmd.InOrStdin())
	if err != nil {
		logger.Fatal("reading profile", zap.Error(err), zap.String("path", path))
	}

	cat, err := loadCatalog(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}

	rec, err := cat.Recommend(p)
	if err != nil {
		logger.Fatal("recommending", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), rec); err != nil {
		logger.Fatal("printing recommendation", zap.Error(err))
	}

	saveHistory(ctx, config, logger, p, rec)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	s := &session{
		ctx:            ctx,
		config:         config,
		logger:         logger,
		catalog:        cat,
		recommendation: rec,
		career:         rec.Career,
		out:            cmd.OutOrStdout(),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func (s *session) handleAction(action string) error {
	switch action {
	case PromptMentors:
		return printJSON(s.out, s.catalog.Mentors(s.career))
	case PromptRoadmap:
		return printJSON(s.out, s.catalog.Roadmap(s.career))
	case PromptAlternative:
		return s.switchCareer()
	case PromptJobs:
		return s.searchJobs()
	case PromptAsk:
		return s.ask()
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) switchCareer() error {
	careerPrompt := promptui.Select{
		Label: "Choose a career and press ENTER",
		Items: append(append([]string{}, s.recommendation.Recommendations...), PromptBack),
	}

	_, selected, err := careerPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack || selected == s.career {
		return nil
	}

	s.career = selected
	s.jobs = nil
	s.logger.Info("switched career", zap.String("career", selected))
	return nil
}

func (s *session) searchJobs() error {
	client, err := newJobsClient(s.config, s.logger)
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("job search is disabled")
	}

	found, err := client.Search(s.ctx, s.career)
	if err != nil {
		return err
	}
	s.jobs = found

	s.logger.Info("found jobs", zap.Int("count", found.Len()), zap.String("career", s.career))
	return printJSON(s.out, found.List())
}

func (s *session) ask() error {
	assistant, err := newAssistant(s.ctx, s.config.AI, s.logger)
	if err != nil {
		return err
	}
	if assistant == nil {
		return errors.New("assistant is disabled")
	}

	questionPrompt := promptui.Prompt{
		Label: "Question",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return ai.ErrEmptyMessage
			}
			return nil
		},
	}

	question, err := questionPrompt.Run()
	if err != nil {
		return err
	}

	reply, err := assistant.Reply(s.ctx, question, s.assistantContext())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(s.out, reply)
	return err
}

func (s *session) assistantContext() *ai.Context {
	c := &ai.Context{
		Career:          s.career,
		Recommendations: s.recommendation.Recommendations,
		Jobs:            s.jobs.Titles(),
	}
	for _, m := range s.catalog.Mentors(s.career) {
		c.Mentors = append(c.Mentors, m.Name)
	}
	return c
}

// readProfile decodes a profile from path. Files ending in .yaml or .yml are
// read as yaml, everything else as json.
func readProfile(path string, stdin io.Reader) (*profile.Profile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var p profile.Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return &p, nil
}

func saveHistory(ctx context.Context, config *Config, logger *zap.Logger, p *profile.Profile, rec *catalog.Recommendation) {
	store, err := openHistory(ctx, config, logger)
	if err != nil {
		logger.Warn("history is disabled", zap.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	record := history.NewRecord(p.Name, rec.Career, rec.Recommendations, string(rec.Path))
	if err := store.Save(ctx, record); err != nil {
		logger.Warn("saving history failed", zap.Error(err))
	}
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
