/*
Package builder is responsible for turning a static model description (a
config.Document) into a validated *model.TimingModel, and back.

Construction is a multi-phase process:

 1. Component Creation: every component spec is instantiated from the
    registry, so each model gets independent components with their default
    parameter sets.

 2. Parameter Binding: each parameter spec either updates a parameter the
    component already has or, for prefix family members such as F2 or
    DMX_0003, creates it from the component's declared template. Members are
    added without setup because a family may be incomplete until the last
    member of the document is bound.

 3. Staging and Validation: components are added to the model without
    validation (the model runs each one's setup as it is added), and the
    whole model is validated once at the end. The first failure is returned
    attributed to its component.

Describe performs the reverse mapping for serializers.
*/
package builder
