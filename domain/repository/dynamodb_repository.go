package repository

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

var incidentsTable = "incidents"

func init() {
	if os.Getenv("DYNAMO_INCIDENTS_TABLE") != "" {
		incidentsTable = os.Getenv("DYNAMO_INCIDENTS_TABLE")
	}
}

func NewDynamoDBRepository(ctx context.Context) (*DynamoDBRepository, error) {
	var db *dynamo.DB
	if os.Getenv("DYNAMO_LOCAL") != "" {
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion("dummy"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "dummy")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}
		db = dynamo.New(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String("http://localhost:8000")
		})

		if err := setupDdbSchema(db); err != nil {
			return nil, fmt.Errorf("failed to setup schema: %v", err)
		}
	} else {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}
		db = dynamo.New(cfg)
	}

	return &DynamoDBRepository{db: db}, nil
}

func setupDdbSchema(db *dynamo.DB) error {
	t := db.Table(incidentsTable)
	_, err := t.Describe().Run(context.TODO())
	if err != nil {
		input := db.CreateTable(incidentsTable, entity.Incident{}).
			Provision(10, 10)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return input.Run(ctx)
	}
	return nil
}

type DynamoDBRepository struct {
	db *dynamo.DB
}

// SaveIncident is an upsert keyed by incident_id; rewriting the same
// assembled record is safe, so a failed write may be retried by the caller.
func (r *DynamoDBRepository) SaveIncident(ctx context.Context, incident *entity.Incident) error {
	return r.db.Table(incidentsTable).Put(incident).Run(ctx)
}

func (r *DynamoDBRepository) FindIncidentByID(ctx context.Context, id string) (*entity.Incident, error) {
	incident := &entity.Incident{}
	err := r.db.Table(incidentsTable).Get("incident_id", id).One(ctx, incident)
	if err != nil {
		if err == dynamo.ErrNotFound {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return incident, nil
}

// QueryIncidents returns incidents most recent first. Filters are applied
// server-side; ordering and the limit are applied after the scan because
// the table's hash key carries no recency.
func (r *DynamoDBRepository) QueryIncidents(ctx context.Context, filter IncidentFilter) ([]entity.Incident, error) {
	var incidents []entity.Incident
	scan := r.db.Table(incidentsTable).Scan()
	if filter.Status != "" {
		scan = scan.Filter("'status' = ?", filter.Status)
	}
	if filter.Severity != "" {
		scan = scan.Filter("'severity' = ?", filter.Severity)
	}
	if err := scan.All(ctx, &incidents); err != nil {
		return nil, err
	}

	sort.Slice(incidents, func(i, j int) bool {
		return incidents[i].Timestamp > incidents[j].Timestamp
	})
	if filter.Limit > 0 && len(incidents) > filter.Limit {
		incidents = incidents[:filter.Limit]
	}
	return incidents, nil
}

func (r *DynamoDBRepository) IncidentsSince(ctx context.Context, since time.Time) ([]entity.Incident, error) {
	var incidents []entity.Incident
	err := r.db.Table(incidentsTable).Scan().Filter("'timestamp' > ?", since.UnixMilli()).All(ctx, &incidents)
	if err != nil {
		return nil, err
	}
	return incidents, nil
}
