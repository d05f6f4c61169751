package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/search/queries"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

func TestGetSearchProfile(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient()
	client.Profile = helpers.CreateTestSearchProfile(6)
	handler := queries.NewGetSearchProfileHandler(client)

	// Act
	resp, err := handler.Handle(common.WithSessionToken(context.Background(), "tok"), &queries.GetSearchProfileQuery{})

	// Assert
	require.NoError(t, err)
	profile := resp.(*queries.GetSearchProfileResponse).Profile
	assert.Equal(t, 6, profile.Remaining())
	assert.True(t, profile.Eligible())
	assert.Equal(t, "tok", client.Calls()[0].Token)
}

func TestGetSearchProfile_RequiresSession(t *testing.T) {
	handler := queries.NewGetSearchProfileHandler(helpers.NewMockGameClient())

	_, err := handler.Handle(context.Background(), &queries.GetSearchProfileQuery{})

	assert.ErrorIs(t, err, shared.ErrNoSession)
}
