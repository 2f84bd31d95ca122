package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractContextCarriesAllFields(t *testing.T) {
	c := Contract{
		ContractType:   ContractVendor,
		Industry:       IndustrySoftware,
		ContractValue:  500000,
		DurationMonths: 6,
		UserExperience: 4,
	}

	cctx := c.Context()

	assert.Equal(t, ContractVendor, cctx.ContractType)
	assert.Equal(t, IndustrySoftware, cctx.Industry)
	assert.Equal(t, 500000.0, cctx.ContractValue)
	assert.Equal(t, 6, cctx.DurationMonths)
	assert.Equal(t, 4, cctx.UserExperience)
}

func TestContractContextDefaults(t *testing.T) {
	cctx := (&Contract{}).Context()

	assert.Equal(t, ContractFreelance, cctx.ContractType)
	assert.Equal(t, IndustryGeneral, cctx.Industry)
}

func TestNormalizePreservesProvidedValues(t *testing.T) {
	in := ContractContext{
		ContractType:   ContractEmployment,
		Industry:       IndustryDesign,
		UserExperience: 10,
	}

	assert.Equal(t, in, in.Normalize())
}
