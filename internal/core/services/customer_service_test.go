package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/zaminwale/crm_backend/internal/apperrors"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portsrepo "github.com/zaminwale/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/core/services"
	"github.com/zaminwale/crm_backend/internal/dto"
)

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomers(ctx context.Context, limit int, createdBefore *time.Time) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, createdBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomersByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomersWithPayments(ctx context.Context, start, end *time.Time) ([]domain.Customer, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock ActivityLogService ---
type MockActivityLogService struct {
	mock.Mock
}

var _ portssvc.ActivityLogSvcFacade = (*MockActivityLogService)(nil)

func (m *MockActivityLogService) Record(ctx context.Context, actor, action, customerID, details string) error {
	args := m.Called(ctx, actor, action, customerID, details)
	return args.Error(0)
}

func (m *MockActivityLogService) ListLogs(ctx context.Context, limit, offset int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

// --- Test Suite Setup ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockCustomerRepository
	mockLogSvc *MockActivityLogService
	service    portssvc.CustomerSvcFacade
	actor      string
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.mockLogSvc = new(MockActivityLogService)
	suite.service = services.NewCustomerService(suite.mockRepo, suite.mockLogSvc)
	suite.actor = "Admin"
}

func (suite *CustomerServiceTestSuite) existingCustomer() *domain.Customer {
	return &domain.Customer{
		ID:          uuid.NewString(),
		CustomerID:  "ZW-100",
		Name:        "Ravi Patil",
		TotalAmount: decimal.NewFromInt(100000),
		Status:      domain.CustomerActive,
	}
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerID: "ZW-100",
		Name:       "Ravi Patil",
		Location:   "Panvel",
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Added Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.actor)

	suite.NoError(err)
	suite.NotNil(customer)
	suite.Equal(domain.CustomerActive, customer.Status)
	suite.NotEmpty(customer.ID)
	suite.NotEmpty(customer.Date)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLogSvc.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_MissingIdentityFails() {
	ctx := context.Background()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "No ID"}, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_UnknownStatusFails() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{CustomerID: "ZW-100", Name: "Ravi Patil", Status: "Lost"}

	_, err := suite.service.CreateCustomer(ctx, req, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_AuditFailureIsSwallowed() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{CustomerID: "ZW-100", Name: "Ravi Patil"}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Added Customer", "ZW-100", mock.AnythingOfType("string")).
		Return(errors.New("log sink down")).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.actor)

	suite.NoError(err)
	suite.NotNil(customer)
	suite.mockLogSvc.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_CrossPaymentMarksSource() {
	ctx := context.Background()
	source := suite.existingCustomer()
	source.CustomerID = "ZW-050"

	req := dto.CreateCustomerRequest{
		CustomerID:       "ZW-100",
		Name:             "Ravi Patil",
		PaidByCustomerID: "ZW-050",
	}

	suite.mockRepo.On("FindCustomerByCustomerID", ctx, "ZW-050").Return(source, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == "ZW-050" && c.CrossPaymentFlag == "Transferred to ZW-100" && c.IsTransferred
	})).Return(nil).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.PaidByCustomerID == "ZW-050"
	})).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Added Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.actor)

	suite.NoError(err)
	suite.Equal("ZW-050", customer.PaidByCustomerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_CrossPaymentMissingSourceIsNoOp() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerID:       "ZW-100",
		Name:             "Ravi Patil",
		PaidByCustomerID: "ZW-999",
	}

	suite.mockRepo.On("FindCustomerByCustomerID", ctx, "ZW-999").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.PaidByCustomerID == "ZW-999"
	})).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Added Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.actor)

	suite.NoError(err)
	suite.Equal("ZW-999", customer.PaidByCustomerID)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_SnapshotsPriorState() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	id := existing.ID
	newName := "Ravi R. Patil"

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == newName &&
			len(c.EditHistory) == 1 &&
			c.EditHistory[0].PreviousData.Name == "Ravi Patil"
	})).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Updated Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, id, dto.UpdateCustomerRequest{Name: &newName}, suite.actor)

	suite.NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Len(updated.EditHistory, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NoOpStillSnapshots() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	id := existing.ID

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Updated Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, id, dto.UpdateCustomerRequest{}, suite.actor)

	suite.NoError(err)
	suite.Len(updated.EditHistory, 1)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_InvalidStatusFails() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	id := existing.ID
	bad := "Gone"

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()

	_, err := suite.service.UpdateCustomer(ctx, id, dto.UpdateCustomerRequest{Status: &bad}, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_ReplacingPlanRecomputesTotals() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	id := existing.ID

	plan := []dto.InstallmentInput{
		{ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(30000))},
		{ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(20000))},
	}

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Updated Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, id, dto.UpdateCustomerRequest{Installments: &plan}, suite.actor)

	suite.NoError(err)
	suite.True(updated.ReceivedAmount.Equal(decimal.NewFromInt(50000)))
	suite.True(updated.BalanceAmount.Equal(decimal.NewFromInt(50000)))
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCustomerByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateCustomer(ctx, "missing", dto.UpdateCustomerRequest{}, suite.actor)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestAddInstallment_AppendsAndPersists() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	existing.Installments = []domain.Installment{
		{InstallmentNo: 1, ReceivedAmount: decimal.NewFromInt(30000)},
	}
	services.RecomputeTotals(existing)
	id := existing.ID

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return len(c.Installments) == 2 && c.Installments[1].InstallmentNo == 2
	})).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Added Installment", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	req := dto.AddInstallmentRequest{ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(20000))}
	updated, err := suite.service.AddInstallment(ctx, id, req, suite.actor)

	suite.NoError(err)
	suite.True(updated.ReceivedAmount.Equal(decimal.NewFromInt(50000)))
	suite.Len(updated.EditHistory, 1, "adding an installment snapshots prior state")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_Audits() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	id := existing.ID

	suite.mockRepo.On("FindCustomerByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteCustomer", ctx, id).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Deleted Customer", "ZW-100", mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, id, suite.actor)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLogSvc.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestBulkImport_CreatesAndUpdates() {
	ctx := context.Background()
	existing := suite.existingCustomer()
	existing.CustomerID = "C1"
	existing.Installments = []domain.Installment{
		{InstallmentNo: 1, ReceivedAmount: decimal.NewFromInt(10000)},
	}
	existing.TotalAmount = decimal.NewFromInt(50000)
	services.RecomputeTotals(existing)

	req := dto.BulkImportRequest{
		Rows: []dto.BulkPaymentRow{
			{CustomerID: "C1", ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(5000))},
			{CustomerID: "C2", Name: "Sunita Deshmukh", TotalAmount: dto.NewFlexDecimal(decimal.NewFromInt(80000)), ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(20000))},
		},
	}

	suite.mockRepo.On("FindCustomerByCustomerID", ctx, "C1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == "C1" && len(c.Installments) == 2 && c.ReceivedAmount.Equal(decimal.NewFromInt(15000))
	})).Return(nil).Once()
	suite.mockRepo.On("FindCustomerByCustomerID", ctx, "C2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == "C2" && len(c.Installments) == 1 && c.Installments[0].Status == domain.InstallmentCompleted
	})).Return(nil).Once()
	suite.mockLogSvc.On("Record", ctx, suite.actor, "Bulk Imported Payments", "", mock.AnythingOfType("string")).Return(nil).Once()

	res, err := suite.service.BulkImport(ctx, req, suite.actor)

	suite.NoError(err)
	suite.Equal(1, res.Created)
	suite.Equal(1, res.Updated)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestBulkImport_RowWithoutCustomerIDFails() {
	ctx := context.Background()
	req := dto.BulkImportRequest{Rows: []dto.BulkPaymentRow{{Name: "No ID"}}}

	_, err := suite.service.BulkImport(ctx, req, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *CustomerServiceTestSuite) TestBulkImport_CreateWithoutNameFails() {
	ctx := context.Background()
	req := dto.BulkImportRequest{Rows: []dto.BulkPaymentRow{
		{CustomerID: "C9", ReceivedAmount: dto.NewFlexDecimal(decimal.NewFromInt(1000))},
	}}

	suite.mockRepo.On("FindCustomerByCustomerID", ctx, "C9").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BulkImport(ctx, req, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
