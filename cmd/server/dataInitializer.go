package main

import (
	"context"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/utils/platformerrors"
)

type DataInitializer struct {
	Chemicals *chemical.Service
}

// Install seeds the base chemical catalog so fresh installs can react
// immediately, without waiting for on-demand generation.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()
	if cfg == nil || !cfg.SeedChemicals {
		return nil
	}

	if err := d.Chemicals.Seed(ctx, baseChemicals()); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to seed base chemicals")
	}
	return nil
}

func baseChemicals() []chemical.Chemical {
	return []chemical.Chemical{
		{MolecularFormula: "H2O", CommonName: "Water", StateOfMatter: "liquid", Color: "colorless", Density: 1.0},
		{MolecularFormula: "NaCl", CommonName: "Table salt", StateOfMatter: "solid", Color: "white", Density: 2.17},
		{MolecularFormula: "Na", CommonName: "Sodium", StateOfMatter: "solid", Color: "silvery", Density: 0.97},
		{MolecularFormula: "K", CommonName: "Potassium", StateOfMatter: "solid", Color: "silvery", Density: 0.86},
		{MolecularFormula: "HCl", CommonName: "Hydrochloric acid", StateOfMatter: "aqueous", Color: "colorless", Density: 1.19},
		{MolecularFormula: "NaOH", CommonName: "Sodium hydroxide", StateOfMatter: "solid", Color: "white", Density: 2.13},
		{MolecularFormula: "O2", CommonName: "Oxygen", StateOfMatter: "gas", Color: "colorless", Density: 0.001429},
		{MolecularFormula: "H2", CommonName: "Hydrogen", StateOfMatter: "gas", Color: "colorless", Density: 0.0000899},
		{MolecularFormula: "CO2", CommonName: "Carbon dioxide", StateOfMatter: "gas", Color: "colorless", Density: 0.001977},
		{MolecularFormula: "CaCO3", CommonName: "Calcium carbonate", StateOfMatter: "solid", Color: "white", Density: 2.71},
		{MolecularFormula: "H2SO4", CommonName: "Sulfuric acid", StateOfMatter: "liquid", Color: "colorless", Density: 1.83},
		{MolecularFormula: "Fe", CommonName: "Iron", StateOfMatter: "solid", Color: "gray", Density: 7.87},
		{MolecularFormula: "Mg", CommonName: "Magnesium", StateOfMatter: "solid", Color: "silvery", Density: 1.74},
		{MolecularFormula: "NaHCO3", CommonName: "Baking soda", StateOfMatter: "solid", Color: "white", Density: 2.20},
		{MolecularFormula: "CH3COOH", CommonName: "Acetic acid", StateOfMatter: "liquid", Color: "colorless", Density: 1.05},
	}
}
