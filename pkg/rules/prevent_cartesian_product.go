package rules

import (
	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

// CartesianWarning is the comment line prepended to queries that risk an
// unconstrained cross product. The improvement score checks for it.
const CartesianWarning = "-- WARNING: Potential cartesian product - consider adding JOIN conditions"

func init() {
	Register(Rule{
		Kind:  KindPreventCartesianProduct,
		Name:  "Prevent Cartesian Product",
		Apply: preventCartesianProduct,
	})
}

// preventCartesianProduct prepends a warning comment when the FROM clause
// lists two or more comma-separated tables with no JOIN keyword and no WHERE
// clause. The statement itself is not altered.
func preventCartesianProduct(sql string, _ *types.QueryContext) (string, error) {
	if !sqltext.HasCartesianRisk(sql) {
		return sql, nil
	}
	return CartesianWarning + "\n" + sql, nil
}
