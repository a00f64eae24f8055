package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"aircon_controller/internal/gateway"
	"aircon_controller/internal/logger"
	"aircon_controller/internal/models"
	"aircon_controller/internal/mqtt"
	"aircon_controller/internal/repository"
)

const tokenURL = "https://home.nature.global/"

// SetupService runs the interactive first-run dialogue: ask for a token,
// list the account's air conditioners and store the chosen one.
type SetupService struct {
	settings  repository.SettingsRepo
	eventRepo repository.EventRepo
	gw        gateway.Gateway
	publisher mqtt.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewSetupService(repos *repository.Repository, gw gateway.Gateway, publisher mqtt.Publisher, log *logger.Logger) *SetupService {
	if publisher == nil {
		publisher = mqtt.NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SetupService{
		settings:  repos.Settings,
		eventRepo: repos.EventRepo,
		gw:        gw,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Run drives the dialogue over in/out and returns the selected appliance.
// A gateway failure or an account without air conditioners clears the token
// again so the next run restarts setup.
func (s *SetupService) Run(ctx context.Context, in io.Reader, out io.Writer) (models.Appliance, error) {
	r := bufio.NewReader(in)

	fmt.Fprintln(out, "A Nature Remo Cloud API access token is required.")
	fmt.Fprintln(out, "Issue one at:", tokenURL)
	fmt.Fprint(out, "Access token: ")

	token, err := readLine(r)
	if err != nil {
		return models.Appliance{}, err
	}
	if token == "" {
		return models.Appliance{}, ErrEmptyToken
	}
	if err := s.settings.SaveToken(ctx, token); err != nil {
		return models.Appliance{}, fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintln(out, "Token saved.")

	apps, err := s.gw.ListAppliances(ctx, token)
	if err != nil {
		s.log.Warnw("setup_list_appliances_failed", "kind", gateway.KindOf(err).String(), "err", err)
		fmt.Fprintln(out, "Check the token and the network connection.")
		return models.Appliance{}, s.discardToken(ctx, err)
	}

	var aircons []models.Appliance
	for _, a := range apps {
		if a.IsAirCon() {
			aircons = append(aircons, a)
		}
	}
	if len(aircons) == 0 {
		return models.Appliance{}, s.discardToken(ctx, ErrNoAirConditioners)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Select the air conditioner to control:")
	for i, a := range aircons {
		fmt.Fprintf(out, "[%d] %s\n", i, a.Nickname)
	}

	var selected models.Appliance
	for {
		fmt.Fprint(out, "Number: ")
		line, err := readLine(r)
		if err != nil {
			return models.Appliance{}, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(out, "Please enter a number.")
			continue
		}
		if n < 0 || n >= len(aircons) {
			fmt.Fprintln(out, "Invalid number.")
			continue
		}
		selected = aircons[n]
		break
	}

	if err := s.settings.SaveApplianceID(ctx, selected.ID); err != nil {
		return models.Appliance{}, fmt.Errorf("save appliance id: %w", err)
	}
	fmt.Fprintf(out, "Selected %q.\n", selected.Nickname)

	publishEvent(ctx, s.eventRepo, s.publisher, s.log, models.ControlEvent{
		OccurredAt:  s.now(),
		Type:        models.EventSetupCompleted,
		Description: "controlling " + selected.Nickname,
		Metadata:    map[string]any{"appliance_id": selected.ID},
	})
	s.log.Infow("setup_completed", "appliance_id", selected.ID, "nickname", selected.Nickname)
	return selected, nil
}

func (s *SetupService) discardToken(ctx context.Context, cause error) error {
	if err := s.settings.SaveToken(ctx, ""); err != nil {
		return errors.Join(cause, fmt.Errorf("clear token: %w", err))
	}
	return cause
}

// readLine returns the next trimmed line. End of input before any text is
// ErrSetupCancelled.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrSetupCancelled
		}
	}
	return strings.TrimSpace(line), nil
}
