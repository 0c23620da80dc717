package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/oracle"
)

func TestRun_NumbersEmailsSequentially(t *testing.T) {
	o := happyOracle()
	reg := testRegistry()
	p := New(o, reg, 0.85, 0.6)

	first := testEmail()
	second := testEmail()
	second.MessageID = "MSG-002"

	res, err := p.Run(context.Background(), []model.Email{first, second})
	require.NoError(t, err)
	require.NotEmpty(t, res.JobID)
	require.Len(t, res.Lines, 4)
	assert.Equal(t, 1, res.Lines[0].OrderNo)
	assert.Equal(t, 1, res.Lines[1].OrderNo)
	assert.Equal(t, 2, res.Lines[2].OrderNo)
	assert.Equal(t, 2, res.Lines[3].OrderNo)
}

func TestRun_FailedEmailContributesStubAndContinues(t *testing.T) {
	o := happyOracle()
	o.customer = oracle.CustomerResult{Names: []string{"Zzz Qqq"}, NeedsFuzzyMatch: true}
	p := New(o, testRegistry(), 0.85, 0.6)

	res, err := p.Run(context.Background(), []model.Email{testEmail(), testEmail()})
	require.NoError(t, err)
	assert.Len(t, res.Lines, 2)
	assert.Len(t, res.Failures, 2)
	assert.Equal(t, 1, res.Lines[0].OrderNo)
	assert.Equal(t, 2, res.Lines[1].OrderNo)
}

func TestRun_CancelledContext(t *testing.T) {
	p := New(happyOracle(), testRegistry(), 0.85, 0.6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []model.Email{testEmail()})
	require.Error(t, err)
}

func TestPersist_WritesLinesAndContexts(t *testing.T) {
	o := happyOracle()
	reg := testRegistry()
	p := New(o, reg, 0.85, 0.6)

	res, err := p.Run(context.Background(), []model.Email{testEmail()})
	require.NoError(t, err)

	res.Failures = append(res.Failures, model.FailureContext{
		Kind:    model.FailureCustomerID,
		OrderNo: 9,
	})
	require.NoError(t, p.Persist(context.Background(), res))

	assert.Equal(t, res.JobID, reg.insertedJob)
	assert.Equal(t, res.JobID, reg.savedJob)
	assert.Len(t, reg.inserted, 2)
	assert.Len(t, reg.saved, 1)
}
