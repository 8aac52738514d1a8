package eth

import (
	"context"
	"fmt"

	"github.com/clubaccess/zkauth-node/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// clubDetails mirrors the club registry's getClub outputs
type clubDetails struct {
	Admin       common.Address
	Name        string
	Description string
	Active      bool
}

// membershipFlags mirrors the membership registry's membershipStatus
// outputs: the four independent membership categories
type membershipFlags struct {
	Permanent  bool
	Temporary  bool
	TokenBased bool
	CrossChain bool
}

// ClubMembership reads the configured club from the club registry and the
// candidate's membership flags from the membership registry, and combines
// them into a single decision. An inactive club admits no one, including its
// admin. Any read failure is returned as-is: membership is never guessed on
// error.
func (c *Client) ClubMembership(ctx context.Context,
	candidate common.Address) (*types.MembershipDecision, error) {
	club, err := c.getClub(ctx, c.opts.ClubName)
	if err != nil {
		return nil, fmt.Errorf("can not read club %q: %w", c.opts.ClubName, err)
	}
	if !club.Active {
		return &types.MembershipDecision{ClubName: c.opts.ClubName}, nil
	}
	flags, err := c.membershipStatus(ctx, candidate, c.opts.ClubName)
	if err != nil {
		return nil, fmt.Errorf("can not read membership of %s in club %q: %w",
			candidate.Hex(), c.opts.ClubName, err)
	}
	return decideMembership(club, flags, candidate, c.opts.ClubName), nil
}

// decideMembership combines the club record and the membership flags into
// the final decision. An inactive club admits no one. Owner is the
// case-insensitive address match against the club admin (common.Address
// equality is canonical byte equality); Member is the OR of the four flags
// and Owner.
func decideMembership(club *clubDetails, flags *membershipFlags,
	candidate common.Address, clubName string) *types.MembershipDecision {
	if !club.Active {
		return &types.MembershipDecision{ClubName: clubName}
	}
	owner := club.Admin == candidate
	return &types.MembershipDecision{
		Member: owner || flags.Permanent || flags.Temporary ||
			flags.TokenBased || flags.CrossChain,
		Owner:    owner,
		ClubName: clubName,
	}
}

// getClub reads the club record for the given name from the club registry
func (c *Client) getClub(ctx context.Context, name string) (*clubDetails, error) {
	data, err := clubRegistryABI.Pack("getClub", name)
	if err != nil {
		return nil, fmt.Errorf("can not pack getClub args: %w", err)
	}
	res, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.opts.ClubRegistryAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("getClub call failed: %w", err)
	}
	var club clubDetails
	if err := clubRegistryABI.UnpackIntoInterface(&club, "getClub", res); err != nil {
		return nil, fmt.Errorf("can not unpack getClub return: %w", err)
	}
	return &club, nil
}

// membershipStatus reads the four membership flags of the candidate for the
// given club in one combined call
func (c *Client) membershipStatus(ctx context.Context, candidate common.Address,
	clubName string) (*membershipFlags, error) {
	data, err := membershipABI.Pack("membershipStatus", candidate, clubName)
	if err != nil {
		return nil, fmt.Errorf("can not pack membershipStatus args: %w", err)
	}
	res, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.opts.MembershipRegistryAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("membershipStatus call failed: %w", err)
	}
	var flags membershipFlags
	if err := membershipABI.UnpackIntoInterface(&flags, "membershipStatus", res); err != nil {
		return nil, fmt.Errorf("can not unpack membershipStatus return: %w", err)
	}
	return &flags, nil
}
