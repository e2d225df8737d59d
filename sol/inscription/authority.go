package inscription

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
	"github.com/samber/lo"
)

// resolveAuthority picks the acting authority: the explicit authority when
// supplied, otherwise the payer. The payer must sign either way.
func resolveAuthority(payer, authority *host.AccountInfo) (*host.AccountInfo, error) {
	acting := payer
	if authority != nil {
		if err := assertSigner(authority); err != nil {
			return nil, err
		}
		acting = authority
	}
	if err := assertSigner(payer); err != nil {
		return nil, err
	}
	return acting, nil
}

func (m *InscriptionMetadata) IsAuthority(key solana.PublicKey) bool {
	return lo.Contains(m.UpdateAuthorities, key)
}

func (m *InscriptionMetadata) checkAuthority(key solana.PublicKey) error {
	if !m.IsAuthority(key) {
		return fmt.Errorf("%s: %w", key, types.ErrInvalidAuthority)
	}
	return nil
}

func (m *InscriptionMetadata) AddAuthority(key solana.PublicKey) error {
	if m.IsAuthority(key) {
		return fmt.Errorf("%s: %w", key, types.ErrAuthorityAlreadyExists)
	}
	m.UpdateAuthorities = append(m.UpdateAuthorities, key)
	return nil
}

// RemoveAuthority swap-removes key: the last authority takes its slot.
func (m *InscriptionMetadata) RemoveAuthority(key solana.PublicKey) error {
	idx := lo.IndexOf(m.UpdateAuthorities, key)
	if idx < 0 {
		return fmt.Errorf("%s: %w", key, types.ErrInvalidAuthority)
	}
	last := len(m.UpdateAuthorities) - 1
	m.UpdateAuthorities[idx] = m.UpdateAuthorities[last]
	m.UpdateAuthorities = m.UpdateAuthorities[:last]
	return nil
}

func (m *InscriptionMetadata) findAssociated(tag string) (int, bool) {
	_, idx, ok := lo.FindIndexOf(m.AssociatedInscriptions, func(a AssociatedInscription) bool {
		return a.Tag == tag
	})
	return idx, ok
}
