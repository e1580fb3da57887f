package source

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	Executed     []executedQuery
	MockResult   neo4j.EagerResult
	Results      map[string]neo4j.EagerResult
	Err          error
	IndicesBuilt bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if r, ok := m.Results[query]; ok {
		return r, nil
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndicesBuilt = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func row(props map[string]interface{}) *neo4j.Record {
	rec := &neo4j.Record{}
	for k, v := range props {
		rec.Keys = append(rec.Keys, k)
		rec.Values = append(rec.Values, v)
	}
	return rec
}
