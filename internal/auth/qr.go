package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// QRHooks receive challenge lifecycle updates for rendering. Either hook
// may be nil.
type QRHooks struct {
	OnChallenge func(models.QRChallenge)
	OnStatus    func(models.QRPollResult)
}

// RunQRLogin drives a login challenge to completion: poll on an interval,
// regenerate when the challenge expires, finalize exactly once on success.
// Returns the produced cookie file path and the account report.
func RunQRLogin(ctx context.Context, client contracts.QRClient, hooks QRHooks) (cookiePath, report string, err error) {
	lifetime := time.Duration(consts.QRChallengeLifetimeSecs) * time.Second
	interval := time.Duration(consts.QRPollIntervalSecs) * time.Second
	return runQRLogin(ctx, client, hooks, interval, lifetime)
}

func runQRLogin(ctx context.Context, client contracts.QRClient, hooks QRHooks, interval, lifetime time.Duration) (string, string, error) {
	challenge, deadline, err := freshChallenge(ctx, client, hooks, lifetime)
	if err != nil {
		return "", "", err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.I("QR login canceled.")
			return "", "", ctx.Err()
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			logging.I("QR code expired, regenerating.")
			if challenge, deadline, err = freshChallenge(ctx, client, hooks, lifetime); err != nil {
				return "", "", err
			}
			continue
		}

		res, err := client.Poll(ctx, challenge.Key)
		if err != nil {
			return "", "", fmt.Errorf("failed to poll login challenge: %w", err)
		}
		if hooks.OnStatus != nil {
			hooks.OnStatus(res)
		}

		switch res.Status {
		case models.QRWaitingScan, models.QRWaitingConfirm:
			continue

		case models.QRExpired:
			logging.I("QR code expired, regenerating.")
			if challenge, deadline, err = freshChallenge(ctx, client, hooks, lifetime); err != nil {
				return "", "", err
			}

		case models.QRSuccess:
			cookiePath, report, err := client.Finalize(ctx, res.ConfirmURL)
			if err != nil {
				return "", "", fmt.Errorf("login confirmation failed: %w", err)
			}
			logging.S("QR login complete, cookies written to %s", cookiePath)
			return cookiePath, report, nil

		default:
			if res.Message == "" {
				return "", "", errors.New("login challenge failed")
			}
			return "", "", errors.New(res.Message)
		}
	}
}

func freshChallenge(ctx context.Context, client contracts.QRClient, hooks QRHooks, lifetime time.Duration) (models.QRChallenge, time.Time, error) {
	challenge, err := client.GenerateChallenge(ctx)
	if err != nil {
		return models.QRChallenge{}, time.Time{}, fmt.Errorf("failed to generate login challenge: %w", err)
	}
	if hooks.OnChallenge != nil {
		hooks.OnChallenge(challenge)
	}
	return challenge, time.Now().Add(lifetime), nil
}
