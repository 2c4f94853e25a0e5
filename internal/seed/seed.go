// Package seed inserts the demo accounts and a handful of tweets.
package seed

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/pkg/apperror"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

type sampleUser struct {
	input   service.RegisterInput
	profile domain.Profile
	tweets  []string
}

var sampleUsers = []sampleUser{
	{
		input: service.RegisterInput{
			Username:    "johndoe",
			Email:       "john@example.com",
			DisplayName: "John Doe",
			Password:    DemoPassword,
		},
		profile: domain.Profile{
			Bio:       "Software Developer | Tech Enthusiast | Coffee Lover",
			Location:  "San Francisco, CA",
			Website:   "https://johndoe.dev",
			AvatarURL: "https://images.pexels.com/photos/771742/pexels-photo-771742.jpeg?w=100&h=100&fit=crop&crop=face",
		},
		tweets: []string{
			"Coffee and code, the perfect combination for a productive morning! Working on a new state management library. Stay tuned! #JavaScript #WebDev",
			"Deployed our first serverless service today. Less really is more. #CloudComputing #Serverless",
		},
	},
	{
		input: service.RegisterInput{
			Username:    "sarahchen",
			Email:       "sarah@example.com",
			DisplayName: "Sarah Chen",
			Password:    DemoPassword,
		},
		profile: domain.Profile{
			Bio:       "UX Designer | Digital Artist | Mountain Hiker",
			Location:  "Seattle, WA",
			Website:   "https://sarahchen.design",
			AvatarURL: "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?w=100&h=100&fit=crop&crop=face",
			Verified:  true,
		},
		tweets: []string{
			"Just finished designing a new mobile app interface! Sometimes the simplest solutions are the most effective. #UXDesign #MobileFirst",
			"Good design is invisible until it is missing. #UXDesign",
		},
	},
}

// Run creates the sample accounts that do not exist yet, each with its
// tweets. Existing accounts are left untouched, so running it twice is safe.
func Run(ctx context.Context, auth *service.AuthService, posts *service.PostService) (int, error) {
	created := 0
	for _, su := range sampleUsers {
		resp, err := auth.RegisterWithProfile(ctx, su.input, su.profile)
		if err != nil {
			if apperror.CodeOf(err) == apperror.CodeAlreadyExists {
				logrus.WithField("username", su.input.Username).Debug("seed: user exists, skipping")
				continue
			}
			return created, err
		}

		for _, content := range su.tweets {
			if _, err := posts.Create(ctx, resp.User.ID, service.CreatePostInput{Content: content}); err != nil {
				return created, err
			}
		}
		created++
		logrus.WithField("username", su.input.Username).Info("seed: user created")
	}
	return created, nil
}
