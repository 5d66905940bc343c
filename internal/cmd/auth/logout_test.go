package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	authmock "github.com/PisklovCor/architecture-pro-bionicpro/internal/auth/mock"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	bionicpromock "github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro/mock"
	uimock "github.com/PisklovCor/architecture-pro-bionicpro/internal/ui/mock"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

func TestLogoutCmd_Run(t *testing.T) {
	tests := []struct {
		name          string
		expectedError string
		factoryErr    error
		setupMocks    func(gateway *authmock.MockGateway, mockUI *uimock.MockProvider)
	}{
		{
			name: "success logout",
			setupMocks: func(gateway *authmock.MockGateway, mockUI *uimock.MockProvider) {
				gomock.InOrder(
					mockUI.EXPECT().Title("Signing out of BionicPRO"),
					gateway.EXPECT().Logout(gomock.Any()).Return(nil),
					mockUI.EXPECT().ShowSuccess("Successfully logged out!"),
					mockUI.EXPECT().NewLine(),
				)
			},
		},
		{
			name: "auth service unreachable still logs out",
			setupMocks: func(gateway *authmock.MockGateway, mockUI *uimock.MockProvider) {
				gomock.InOrder(
					mockUI.EXPECT().Title("Signing out of BionicPRO"),
					gateway.EXPECT().Logout(gomock.Any()).Return(errors.New("request failed: connection refused")),
					mockUI.EXPECT().ShowInfo("The auth service could not be reached, the local session was removed."),
					mockUI.EXPECT().ShowSuccess("Successfully logged out!"),
					mockUI.EXPECT().NewLine(),
				)
			},
		},
		{
			name:          "configuration error",
			factoryErr:    errors.New("invalid configuration: realm is required"),
			expectedError: "invalid configuration",
			setupMocks: func(_ *authmock.MockGateway, mockUI *uimock.MockProvider) {
				mockUI.EXPECT().Title("Signing out of BionicPRO")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gateway := authmock.NewMockGateway(ctrl)
			mockUI := uimock.NewMockProvider(ctrl)
			tt.setupMocks(gateway, mockUI)

			session := newTestSession(t, gateway, verifier.NewMemoryStore(), nil)
			factory := factoryFor(session, nil)
			if tt.factoryErr != nil {
				factory = func(bionicpro.ConfigStore, bionicpro.SessionOptions) (*bionicpro.Session, error) {
					return nil, tt.factoryErr
				}
			}

			cmd := &LogoutCmd{}
			err := cmd.Run(context.Background(), bionicpromock.NewMockConfigStore(ctrl), factory, mockUI)

			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, auth.StatusUnauthenticated, session.Provider.Status())
		})
	}
}
