package keeper

import (
	"github.com/vestamm/vestamm/x/vestamm/types"
)

// InitGenesis loads a validated genesis state into the store.
func (k *Keeper) InitGenesis(gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return types.ErrInvalidState.Wrapf("genesis: %v", err)
	}
	if err := k.SetParams(gs.Params); err != nil {
		return err
	}
	if err := k.setPoolCount(gs.PoolCount); err != nil {
		return err
	}
	for i := range gs.Pools {
		if err := k.SetPool(&gs.Pools[i]); err != nil {
			return err
		}
	}
	for i := range gs.Stakes {
		if err := k.SetStake(&gs.Stakes[i]); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis snapshots the full module state.
func (k *Keeper) ExportGenesis() (*types.GenesisState, error) {
	params, err := k.GetParams()
	if err != nil {
		return nil, err
	}
	count, err := k.GetPoolCount()
	if err != nil {
		return nil, err
	}
	pools, err := k.GetAllPools()
	if err != nil {
		return nil, err
	}
	stakes, err := k.GetAllStakes()
	if err != nil {
		return nil, err
	}
	return &types.GenesisState{
		Params:    params,
		PoolCount: count,
		Pools:     pools,
		Stakes:    stakes,
	}, nil
}
