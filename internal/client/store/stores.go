package store

import (
	"github.com/heartmarshall/donorbase/internal/client/api"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

type (
	Donors   = Collection[dto.Donor, dto.DonorInput, dto.DonorPatch]
	Users    = Collection[dto.User, dto.UserInput, dto.UserPatch]
	Settings = Collection[dto.Setting, dto.SettingInput, dto.SettingPatch]
)

func NewDonors(c *api.Client) *Donors {
	return NewCollection[dto.Donor, dto.DonorInput, dto.DonorPatch](c.Donors())
}

func NewUsers(c *api.Client) *Users {
	return NewCollection[dto.User, dto.UserInput, dto.UserPatch](c.Users())
}

func NewSettings(c *api.Client) *Settings {
	return NewCollection[dto.Setting, dto.SettingInput, dto.SettingPatch](c.Settings())
}
