package slots

import (
	"fmt"
	"net/url"

	"wagergate/pca"
	"wagergate/providers"
)

// PCALauncher builds the PCA game URL with a freshly minted session
// token; the provider presents the token back on every callback.
type PCALauncher struct {
	GameURL string
	PCA     *pca.Service
}

func (p *PCALauncher) StartGame(req providers.LaunchRequest) (string, error) {
	token, err := p.PCA.Launch(req.PlayID)
	if err != nil {
		return "", fmt.Errorf("mint pca session: %w", err)
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("gameCode", req.GameCode)
	if req.Lang != "" {
		q.Set("lang", req.Lang)
	}
	if req.Platform != "" {
		q.Set("platform", req.Platform)
	}
	return p.GameURL + "?" + q.Encode(), nil
}
