package models_test

import (
	"github.com/vending-machines/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFindByNoMatch() {
	company, err := models.FindBy[models.Company](suite.db, "name", "Acme")
	suite.Assert().Nil(err)
	suite.Assert().Nil(company)
}

func (suite *TestSuiteStandard) TestFindByExactMatch() {
	suite.createTestCompany(models.Company{Name: "Acme"})

	company, err := models.FindBy[models.Company](suite.db, "name", "Acme")
	suite.Require().Nil(err)
	suite.Require().NotNil(company)
	suite.Assert().Equal("Acme", company.Name)

	// Matching is case sensitive
	company, err = models.FindBy[models.Company](suite.db, "name", "acme")
	suite.Assert().Nil(err)
	suite.Assert().Nil(company)
}

func (suite *TestSuiteStandard) TestFindByOldestFirst() {
	first := suite.createTestCompany(models.Company{Name: "Acme", Address: "first"})
	_ = suite.createTestCompany(models.Company{Name: "Acme", Address: "second"})

	company, err := models.FindBy[models.Company](suite.db, "name", "Acme")
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, company.ID)
}

func (suite *TestSuiteStandard) TestFindOrCreate() {
	build := func() models.Location {
		return models.Location{InstallationAddress: "Lenina 1"}
	}

	created, isNew, err := models.FindOrCreate(suite.db, "installation_address", "Lenina 1", build)
	suite.Require().Nil(err)
	suite.Assert().True(isNew)
	suite.Assert().Empty(created.PlaceDescription)

	found, isNew, err := models.FindOrCreate(suite.db, "installation_address", "Lenina 1", build)
	suite.Require().Nil(err)
	suite.Assert().False(isNew)
	suite.Assert().Equal(created.ID, found.ID)

	var count int64
	suite.db.Model(&models.Location{}).Count(&count)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestFindOrCreateCreateError() {
	_, _, err := models.FindOrCreate(suite.db, "name", "", func() models.DeviceModel {
		return models.DeviceModel{}
	})
	suite.Assert().ErrorIs(err, models.ErrNameRequired)
}

func (suite *TestSuiteStandard) TestFindByDBClosed() {
	suite.CloseDB()

	_, err := models.FindBy[models.Company](suite.db, "name", "Acme")
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
